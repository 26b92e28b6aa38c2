package mongo

import (
	"context"
	"log/slog"
	"time"

	"github.com/metalvault/metalvault/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreateIndexes(db Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Band Collection: 目录 id 唯一，过期检查按 status + updated_at
	bandCollection := db.Collection(domain.CollectionCatalogBands)
	createUniqueIndex(ctx, bandCollection, bson.D{{Key: "id", Value: 1}}, "id_unique")
	createIndex(ctx, bandCollection, bson.D{{Key: "name_slug", Value: 1}}, "name_slug")
	createIndex(ctx, bandCollection, bson.D{{Key: "status", Value: 1}}, "status")
	createIndex(ctx, bandCollection, bson.D{
		{Key: "status", Value: 1},
		{Key: "updated_at", Value: -1}}, "status_updated_compound")

	// Album Collection
	albumCollection := db.Collection(domain.CollectionCatalogAlbums)
	createUniqueIndex(ctx, albumCollection, bson.D{{Key: "id", Value: 1}}, "id_unique")
	createIndex(ctx, albumCollection, bson.D{{Key: "band_ids", Value: 1}}, "band_ids")
	createIndex(ctx, albumCollection, bson.D{{Key: "title_slug", Value: 1}}, "title_slug")
	createIndex(ctx, albumCollection, bson.D{{Key: "tracklist.id", Value: 1}}, "tracklist_id")

	// Member Collection
	memberCollection := db.Collection(domain.CollectionCatalogMembers)
	createUniqueIndex(ctx, memberCollection, bson.D{{Key: "id", Value: 1}}, "id_unique")
	createIndex(ctx, memberCollection, bson.D{{Key: "fullname_slug", Value: 1}}, "fullname_slug")

	// User Collection
	userCollection := db.Collection(domain.CollectionUser)
	createUniqueIndex(ctx, userCollection, bson.D{{Key: "username", Value: 1}}, "username_unique")
	createUniqueIndex(ctx, userCollection, bson.D{{Key: "email", Value: 1}}, "email_unique")
}

func createIndex(
	ctx context.Context,
	collection Collection,
	keys bson.D,
	name string,
) {
	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name).SetBackground(true),
	}
	ensureIndex(ctx, collection, indexModel, name)
}

func createUniqueIndex(
	ctx context.Context,
	collection Collection,
	keys bson.D,
	name string,
) {
	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name).SetUnique(true).SetBackground(true),
	}
	ensureIndex(ctx, collection, indexModel, name)
}

// 已存在同名索引时跳过
func ensureIndex(ctx context.Context, collection Collection, model mongo.IndexModel, name string) {
	specs, err := collection.Indexes().ListSpecifications(ctx)
	if err == nil {
		for _, spec := range specs {
			if spec.Name == name {
				slog.Debug("index exists, skipping", "index", name)
				return
			}
		}
	} else {
		slog.Warn("list index specifications failed", "index", name, "err", err)
	}

	if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
		slog.Warn("create index failed", "index", name, "err", err)
		return
	}
	slog.Info("index created", "index", name)
}

// DropAllIndexes 删除目录集合上的全部二级索引；尚未创建的集合跳过
func DropAllIndexes(db Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	existing := map[string]bool{}
	names, err := db.ListCollectionNames(ctx, bson.M{"name": bson.M{"$in": domain.CatalogCollections}})
	if err != nil {
		slog.Warn("list collections failed", "err", err)
		return
	}
	for _, name := range names {
		existing[name] = true
	}

	for _, name := range domain.CatalogCollections {
		if !existing[name] {
			slog.Debug("collection missing, skipping", "collection", name)
			continue
		}
		if _, err := db.Collection(name).Indexes().DropAll(ctx); err != nil {
			slog.Warn("drop indexes failed", "collection", name, "err", err)
			continue
		}
		slog.Info("indexes dropped", "collection", name)
	}
}
