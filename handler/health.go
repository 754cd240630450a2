package handler

import (
	"context"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

//Ok is a simple health check endpoint for the service
func Ok(ctx iris.Context) {

	ctx.JSON(map[string]string{"status": "ok"})
}

//Ready reports whether the database answers within two seconds
func Ready(ping func(context.Context) error) iris.Handler {

	return func(ctx iris.Context) {
		pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
		defer cancel()
		if err := ping(pingCtx); err != nil {
			zap.L().Warn("readiness check failed", zap.Error(err))
			ctx.StatusCode(iris.StatusServiceUnavailable)
			ctx.JSON(map[string]string{"status": "unavailable"})
			return
		}
		ctx.JSON(map[string]string{"status": "ok"})
	}
}
