package repository_catalog

import (
	"context"
	"fmt"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/mongo"
	"github.com/metalvault/metalvault/repository"
	"go.mongodb.org/mongo-driver/bson"
)

type bandRepository struct {
	*repository.BaseMongoRepository[catalog_models.BandDocument]
	db         mongo.Database
	collection string
	albums     catalog_interface.AlbumRepository
}

func NewBandRepository(db mongo.Database, collection string, albums catalog_interface.AlbumRepository) catalog_interface.BandRepository {
	return &bandRepository{
		BaseMongoRepository: repository.NewBaseMongoRepository[catalog_models.BandDocument](db, collection),
		db:                  db,
		collection:          collection,
		albums:              albums,
	}
}

// FindResolvedByID 读取乐队文档并将唱片目录引用还原为条目
func (r *bandRepository) FindResolvedByID(ctx context.Context, id int64) (*catalog_models.Band, error) {
	doc, err := r.FindByID(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}

	albums, err := r.albums.ResolveReferences(ctx, doc.Discography)
	if err != nil {
		return nil, fmt.Errorf("band %d: %w", id, err)
	}

	band := &catalog_models.Band{
		BandProfile: doc.BandProfile,
		Discography: make([]catalog_models.DiscographyEntry, 0, len(albums)),
	}
	for _, album := range albums {
		band.Discography = append(band.Discography, album.DiscographyEntry())
	}
	return band, nil
}

func (r *bandRepository) CountByStatus(ctx context.Context) (catalog_models.BandStats, error) {
	var stats catalog_models.BandStats

	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}
	coll := r.db.Collection(r.collection)
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return stats, fmt.Errorf("failed to group bands by status: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return stats, fmt.Errorf("failed to decode status group: %w", err)
		}
		stats.Add(catalog_models.BandStatus(row.Status), row.Count)
	}
	if err := cursor.Err(); err != nil {
		return catalog_models.BandStats{}, fmt.Errorf("failed to group bands by status: %w", err)
	}
	return stats, nil
}
