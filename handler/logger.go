package handler

import (
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

//RequestLogger logs every request once the rest of the chain has run
func RequestLogger() iris.Handler {

	return func(ctx iris.Context) {
		start := time.Now()
		ctx.Next()
		zap.L().Debug("request",
			zap.Int("status", ctx.GetStatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", ctx.RemoteAddr()),
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
		)
	}
}
