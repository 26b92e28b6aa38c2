package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/metalvault/metalvault/domain"
	"github.com/metalvault/metalvault/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseMongoRepository MongoDB通用Repository实现，以目录数字 id 为业务键
type BaseMongoRepository[T any] struct {
	db         mongo.Database
	collection string
	now        func() time.Time
}

// NewBaseMongoRepository 创建新的MongoDB Repository实例
func NewBaseMongoRepository[T any](db mongo.Database, collection string) *BaseMongoRepository[T] {
	return &BaseMongoRepository[T]{
		db:         db,
		collection: collection,
		now:        time.Now,
	}
}

var _ domain.CatalogRepository[struct{}] = (*BaseMongoRepository[struct{}])(nil)

func (r *BaseMongoRepository[T]) coll() mongo.Collection {
	return r.db.Collection(r.collection)
}

// FindByID 根据目录 id 获取实体，未找到返回 (nil, nil)
func (r *BaseMongoRepository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	err := r.coll().FindOne(ctx, bson.M{"id": id}).Decode(&entity)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s %d: %w", r.collection, id, err)
	}
	return &entity, nil
}

// FindRefByID 只投影存储引用，用于唱片目录去重
func (r *BaseMongoRepository[T]) FindRefByID(ctx context.Context, id int64) (primitive.ObjectID, bool, error) {
	var ref struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.coll().FindOne(ctx, bson.M{"id": id}, opts).Decode(&ref)
	if err != nil {
		if domain.IsNotFound(err) {
			return primitive.NilObjectID, false, nil
		}
		return primitive.NilObjectID, false, fmt.Errorf("failed to look up %s %d: %w", r.collection, id, err)
	}
	return ref.ID, true, nil
}

// Insert 首次写入；唯一索引冲突原样返回，由调用方决定是否回退为 upsert
func (r *BaseMongoRepository[T]) Insert(ctx context.Context, entity *T) (primitive.ObjectID, error) {
	if entity == nil {
		return primitive.NilObjectID, errors.New("entity cannot be nil")
	}

	r.setTimestamps(entity)

	resultID, err := r.coll().InsertOne(ctx, entity)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert into %s: %w", r.collection, err)
	}

	oid, ok := resultID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", resultID)
	}
	r.setEntityID(entity, oid)
	return oid, nil
}

// UpsertByID 整文档替换（不存在则创建），返回文档的存储引用
func (r *BaseMongoRepository[T]) UpsertByID(ctx context.Context, id int64, entity *T) (primitive.ObjectID, error) {
	if entity == nil {
		return primitive.NilObjectID, errors.New("entity cannot be nil")
	}

	// 替换文档不得改变 _id
	r.setEntityID(entity, primitive.NilObjectID)
	r.setTimestamps(entity)

	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(bson.M{"_id": 1})

	var ref struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.coll().FindOneAndReplace(ctx, bson.M{"id": id}, entity, opts).Decode(&ref)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to upsert %s %d: %w", r.collection, id, err)
	}

	r.setEntityID(entity, ref.ID)
	return ref.ID, nil
}

// Count 统计数量
func (r *BaseMongoRepository[T]) Count(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	count, err := r.coll().CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.collection, err)
	}
	return count, nil
}

// 辅助方法：设置更新时间（递归进入 inline 嵌入结构）
func (r *BaseMongoRepository[T]) setTimestamps(entity *T) {
	now := r.now().UTC().Truncate(time.Millisecond)
	walkFields(reflect.ValueOf(entity).Elem(), func(name string, field reflect.Value) bool {
		if name == "updated_at" && field.Type() == reflect.TypeOf(now) {
			field.Set(reflect.ValueOf(now))
			return true
		}
		return false
	})
}

// 设置实体ID
func (r *BaseMongoRepository[T]) setEntityID(entity *T, id primitive.ObjectID) {
	walkFields(reflect.ValueOf(entity).Elem(), func(name string, field reflect.Value) bool {
		if matchesIDField(name) && isObjectIDType(field.Type()) {
			if field.Kind() == reflect.Ptr {
				newID := id // 避免取地址临时变量
				field.Set(reflect.ValueOf(&newID))
			} else {
				field.Set(reflect.ValueOf(id))
			}
			return true
		}
		return false
	})
}

// walkFields 按 bson 字段名遍历可写字段，visit 返回 true 时停止
func walkFields(val reflect.Value, visit func(name string, field reflect.Value) bool) bool {
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() { // 跳过不可修改字段
			continue
		}

		// 统一解析标签
		tag := fieldType.Tag.Get("bson")
		fieldName, opts, _ := strings.Cut(tag, ",")

		if fieldType.Anonymous && field.Kind() == reflect.Struct && strings.Contains(opts, "inline") {
			if walkFields(field, visit) {
				return true
			}
			continue
		}
		if fieldName == "" {
			fieldName = fieldType.Name
		}
		if visit(fieldName, field) {
			return true
		}
	}
	return false
}

// 辅助函数：检查字段名是否匹配ID
func matchesIDField(name string) bool {
	return name == "_id"
}

// 辅助函数：检查类型是否为primitive.ObjectID或其指针
func isObjectIDType(t reflect.Type) bool {
	return t == reflect.TypeOf(primitive.ObjectID{}) ||
		t == reflect.TypeOf(&primitive.ObjectID{})
}
