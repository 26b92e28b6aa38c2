package mongo_test

import (
	"errors"
	"testing"

	"github.com/metalvault/metalvault/domain"
	"github.com/metalvault/metalvault/mongo"
	"github.com/metalvault/metalvault/mongo/mocks"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDropAllIndexes_SkipsMissingCollections(t *testing.T) {
	db := &mocks.Database{}
	bandIndexes := &mocks.IndexView{}
	bands := &mocks.Collection{}
	bands.On("Indexes").Return(bandIndexes)
	bandIndexes.On("DropAll", mock.Anything).Return(bson.Raw(nil), nil)

	db.On("ListCollectionNames", mock.Anything, mock.Anything).
		Return([]string{domain.CollectionCatalogBands}, nil)
	db.On("Collection", domain.CollectionCatalogBands).Return(bands)

	mongo.DropAllIndexes(db)

	bandIndexes.AssertNumberOfCalls(t, "DropAll", 1)
	db.AssertNotCalled(t, "Collection", domain.CollectionCatalogAlbums)
	db.AssertNotCalled(t, "Collection", domain.CollectionCatalogMembers)
}

func TestDropAllIndexes_ListFailureDropsNothing(t *testing.T) {
	db := &mocks.Database{}
	db.On("ListCollectionNames", mock.Anything, mock.Anything).
		Return(nil, errors.New("not authorized"))

	mongo.DropAllIndexes(db)

	db.AssertNotCalled(t, "Collection", mock.Anything)
}
