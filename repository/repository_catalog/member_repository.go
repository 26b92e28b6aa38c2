package repository_catalog

import (
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/mongo"
	"github.com/metalvault/metalvault/repository"
)

type memberRepository struct {
	*repository.BaseMongoRepository[catalog_models.Member]
}

func NewMemberRepository(db mongo.Database, collection string) catalog_interface.MemberRepository {
	return &memberRepository{
		BaseMongoRepository: repository.NewBaseMongoRepository[catalog_models.Member](db, collection),
	}
}
