package repository_catalog

import (
	"context"
	"fmt"

	"github.com/metalvault/metalvault/domain"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/mongo"
	"github.com/metalvault/metalvault/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type albumRepository struct {
	*repository.BaseMongoRepository[catalog_models.Album]
	db         mongo.Database
	collection string
}

func NewAlbumRepository(db mongo.Database, collection string) catalog_interface.AlbumRepository {
	return &albumRepository{
		BaseMongoRepository: repository.NewBaseMongoRepository[catalog_models.Album](db, collection),
		db:                  db,
		collection:          collection,
	}
}

// ResolveReferences 一次 $in 查询取回全部专辑，再按引用顺序重排
func (r *albumRepository) ResolveReferences(ctx context.Context, refs []primitive.ObjectID) ([]*catalog_models.Album, error) {
	if len(refs) == 0 {
		return []*catalog_models.Album{}, nil
	}

	coll := r.db.Collection(r.collection)
	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": refs}})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve album references: %w", err)
	}
	defer cursor.Close(ctx)

	var found []catalog_models.Album
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode albums: %w", err)
	}

	byRef := make(map[primitive.ObjectID]*catalog_models.Album, len(found))
	for i := range found {
		byRef[found[i].ObjectID] = &found[i]
	}

	albums := make([]*catalog_models.Album, 0, len(refs))
	for _, ref := range refs {
		if album, ok := byRef[ref]; ok {
			albums = append(albums, album)
		}
	}
	return albums, nil
}

func (r *albumRepository) FindByTrackID(ctx context.Context, trackID int64) (*catalog_models.Album, error) {
	coll := r.db.Collection(r.collection)
	var album catalog_models.Album
	err := coll.FindOne(ctx, bson.M{"tracklist.id": trackID}).Decode(&album)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find album by track %d: %w", trackID, err)
	}
	return &album, nil
}

// SetTrackLyrics 只写入单曲歌词，不改变 updated_at
func (r *albumRepository) SetTrackLyrics(ctx context.Context, albumID, trackID int64, lyrics string) error {
	coll := r.db.Collection(r.collection)
	result, err := coll.UpdateOne(
		ctx,
		bson.M{"id": albumID, "tracklist.id": trackID},
		bson.M{"$set": bson.M{"tracklist.$.lyrics": lyrics}},
	)
	if err != nil {
		return fmt.Errorf("failed to store lyrics %d: %w", trackID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("album %d track %d: %w", albumID, trackID, domain.ErrNotFound)
	}
	return nil
}

func (r *albumRepository) CountTracks(ctx context.Context) (int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id": nil,
			"songs": bson.M{"$sum": bson.M{
				"$size": bson.M{"$ifNull": bson.A{"$tracklist", bson.A{}}},
			}},
		}},
	}

	coll := r.db.Collection(r.collection)
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Songs int64 `bson:"songs"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("failed to decode track count: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return result.Songs, nil
}
