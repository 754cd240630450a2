package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/httptest"
)

func TestOk(t *testing.T) {

	app := iris.New()
	app.Get("/health", Ok)
	e := httptest.New(t, app)
	e.GET("/health").Expect().Status(iris.StatusOK).JSON().Object().Value("status").Equal("ok")
}

func TestReady(t *testing.T) {

	var pingErr error
	app := iris.New()
	app.Get("/ready", Ready(func(context.Context) error { return pingErr }))
	e := httptest.New(t, app)

	e.GET("/ready").Expect().Status(iris.StatusOK)

	pingErr = errors.New("connection refused")
	e.GET("/ready").Expect().Status(iris.StatusServiceUnavailable).
		JSON().Object().Value("status").Equal("unavailable")
}
