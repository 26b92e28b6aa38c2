package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogRepository 目录实体通用Repository接口，以目录数字 id 为键
// T: 实体类型，须带 bson:"id" 字段
type CatalogRepository[T any] interface {
	// FindByID 未找到时返回 (nil, nil)
	FindByID(ctx context.Context, id int64) (*T, error)
	// FindRefByID 仅取存储引用 (_id)
	FindRefByID(ctx context.Context, id int64) (primitive.ObjectID, bool, error)
	Insert(ctx context.Context, entity *T) (primitive.ObjectID, error)
	// UpsertByID 整文档替换，不存在则创建
	UpsertByID(ctx context.Context, id int64, entity *T) (primitive.ObjectID, error)
	Count(ctx context.Context, filter interface{}) (int64, error)
}
