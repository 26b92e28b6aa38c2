package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/route"
	"github.com/metalvault/metalvault/bootstrap"
	"github.com/metalvault/metalvault/mongo"
)

func main() {
	configFile := flag.String("config", ".env", "path to the .env config file")
	flag.Parse()

	app, err := bootstrap.App(*configFile)
	if err != nil {
		slog.Error("failed to bootstrap application", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	env := app.Env
	mongo.CreateIndexes(app.Database())

	if !env.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	route.Setup(app, env.ContextTimeoutDuration(), engine)

	srv := &http.Server{
		Addr:    env.ServerAddress,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", env.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// SSE 连接不会自行结束，超时后强制关闭
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("graceful shutdown incomplete", "err", err)
		_ = srv.Close()
	}
}
