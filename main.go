package main

import (
	"context"

	"github.com/earthrise-media/projects/api/config"
	"github.com/earthrise-media/projects/api/database"
	"github.com/earthrise-media/projects/api/handler"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/kataras/iris/v12"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {

	db, err := config.Preflight(context.Background())
	if err != nil {
		zap.L().Fatal("preflight failed", zap.Error(err))
	}
	defer db.Close()

	app := projectApi(db)
	if err := app.Listen(":" + viper.GetString("PORT")); err != nil {
		zap.L().Error("server stopped", zap.Error(err))
	}
}

func projectApi(db *pgxpool.Pool) *iris.Application {

	app := iris.New()
	app.Use(handler.RequestLogger())

	//healthcheck endpoint
	app.Get("/healthz", handler.Ok)
	app.Get("/health", handler.Ok)
	app.Get("/ready", handler.Ready(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}))

	//project endpoint
	ph := handler.ProjectHandler{ProjectStore: database.NewProjectController(db)}
	ph.Register(app.Party("/projects"))

	return app
}
