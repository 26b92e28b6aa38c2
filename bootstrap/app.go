package bootstrap

import (
	"github.com/metalvault/metalvault/broadcast"
	"github.com/metalvault/metalvault/mongo"
	"github.com/metalvault/metalvault/usecase/usecase_catalog"
)

type Application struct {
	Env     *Env
	Mongo   mongo.Client
	Events  *broadcast.Broadcaster
	Catalog *usecase_catalog.Catalog
}

// App 加载配置、安装日志并构造应用
func App(configFile string) (*Application, error) {
	env, err := NewEnv(configFile)
	if err != nil {
		return nil, err
	}
	InitSlog(env)
	return NewApplication(env)
}

// NewApplication 用已加载的配置构造应用，不改动全局日志设置
func NewApplication(env *Env) (*Application, error) {
	client, err := NewMongoDatabase(env)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Env:    env,
		Mongo:  client,
		Events: broadcast.New(env.EventQueueSize),
	}
	app.Catalog, err = NewCatalog(env, app.Database(), app.Events)
	if err != nil {
		CloseMongoDBConnection(client)
		return nil, err
	}
	return app, nil
}

func (app *Application) Database() mongo.Database {
	return app.Mongo.Database(app.Env.DBName)
}

// Close 先等待后台刷新写完再断开数据库
func (app *Application) Close() {
	if app.Catalog != nil {
		app.Catalog.Close()
	}
	CloseMongoDBConnection(app.Mongo)
}
