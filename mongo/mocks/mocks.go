// Package mocks 为 mongo 包接口提供 testify mock，供仓储层单元测试使用
package mocks

import (
	"context"
	"reflect"

	"github.com/metalvault/metalvault/mongo"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Database struct{ mock.Mock }

func (m *Database) Collection(name string) mongo.Collection {
	ret := m.Called(name)
	return ret.Get(0).(mongo.Collection)
}

func (m *Database) ListCollectionNames(ctx context.Context, filter interface{}) ([]string, error) {
	ret := m.Called(ctx, filter)
	names, _ := ret.Get(0).([]string)
	return names, ret.Error(1)
}

type Collection struct{ mock.Mock }

func (m *Collection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) mongo.SingleResult {
	ret := m.Called(ctx, filter)
	return ret.Get(0).(mongo.SingleResult)
}

func (m *Collection) FindOneAndReplace(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.FindOneAndReplaceOptions) mongo.SingleResult {
	ret := m.Called(ctx, filter, replacement)
	return ret.Get(0).(mongo.SingleResult)
}

func (m *Collection) InsertOne(ctx context.Context, doc interface{}) (interface{}, error) {
	ret := m.Called(ctx, doc)
	return ret.Get(0), ret.Error(1)
}

func (m *Collection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (mongo.Cursor, error) {
	ret := m.Called(ctx, filter)
	cur, _ := ret.Get(0).(mongo.Cursor)
	return cur, ret.Error(1)
}

func (m *Collection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	ret := m.Called(ctx, filter)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *Collection) Aggregate(ctx context.Context, pipeline interface{}) (mongo.Cursor, error) {
	ret := m.Called(ctx, pipeline)
	cur, _ := ret.Get(0).(mongo.Cursor)
	return cur, ret.Error(1)
}

func (m *Collection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*driver.UpdateResult, error) {
	ret := m.Called(ctx, filter, update)
	res, _ := ret.Get(0).(*driver.UpdateResult)
	return res, ret.Error(1)
}

func (m *Collection) Indexes() mongo.IndexView {
	ret := m.Called()
	return ret.Get(0).(mongo.IndexView)
}

// SingleResult Decode 时把 Value 经 BSON 往返写入目标
type SingleResult struct {
	Value interface{}
	Error error
}

func (r *SingleResult) Decode(v interface{}) error {
	if r.Error != nil {
		return r.Error
	}
	return roundTrip(r.Value, v)
}

// Cursor 依次返回 Values 中的文档，遍历结束后 Err 返回 Error
type Cursor struct {
	Values []interface{}
	Error  error
	pos    int
}

func (c *Cursor) Close(context.Context) error { return nil }

func (c *Cursor) Next(context.Context) bool {
	if c.pos >= len(c.Values) {
		return false
	}
	c.pos++
	return true
}

func (c *Cursor) Err() error { return c.Error }

func (c *Cursor) Decode(v interface{}) error {
	return roundTrip(c.Values[c.pos-1], v)
}

func (c *Cursor) All(_ context.Context, result interface{}) error {
	slice := reflect.ValueOf(result).Elem()
	slice.Set(reflect.MakeSlice(slice.Type(), 0, len(c.Values)))
	for _, v := range c.Values {
		elem := reflect.New(slice.Type().Elem())
		if err := roundTrip(v, elem.Interface()); err != nil {
			return err
		}
		slice.Set(reflect.Append(slice, elem.Elem()))
	}
	return nil
}

type IndexView struct{ mock.Mock }

func (m *IndexView) CreateOne(ctx context.Context, model driver.IndexModel) (string, error) {
	ret := m.Called(ctx, model)
	return ret.String(0), ret.Error(1)
}

func (m *IndexView) DropAll(ctx context.Context) (bson.Raw, error) {
	ret := m.Called(ctx)
	raw, _ := ret.Get(0).(bson.Raw)
	return raw, ret.Error(1)
}

func (m *IndexView) ListSpecifications(ctx context.Context) ([]*driver.IndexSpecification, error) {
	ret := m.Called(ctx)
	specs, _ := ret.Get(0).([]*driver.IndexSpecification)
	return specs, ret.Error(1)
}

func roundTrip(in, out interface{}) error {
	data, err := bson.Marshal(in)
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, out)
}
