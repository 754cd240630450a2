package main

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/earthrise-media/projects/api/database"
	"github.com/earthrise-media/projects/api/database/testdb"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/httptest"
	"github.com/pkg/errors"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {

	pool, release, err := testdb.Connect(context.Background())
	if err == nil {
		db = pool
	} else if !errors.Is(err, testdb.ErrUnavailable) {
		fmt.Fprintf(os.Stderr, "test database: %s\n", err)
	}
	code := m.Run()
	if release != nil {
		release()
	}
	os.Exit(code)
}

func setup(t *testing.T) *iris.Application {
	t.Helper()
	if db == nil {
		t.Skip(testdb.ErrUnavailable.Error())
	}
	ctx := context.Background()
	if err := database.DeleteSchema(ctx, db); err != nil {
		t.Fatal(err)
	}
	if err := database.SetupSchema(ctx, db); err != nil {
		t.Fatal(err)
	}
	return projectApi(db)
}

func body(name, description string, from, to string) map[string]interface{} {
	b := map[string]interface{}{
		"name":            name,
		"date_range_from": from,
		"date_range_to":   to,
		"geo_file": map[string]interface{}{
			"type":     "test",
			"geometry": map[string]interface{}{"type": "test", "coordinates": [][][][]float64{{{{22.33, 44.55}}}}},
		},
	}
	if description != "" {
		b["description"] = description
	}
	return b
}

func TestHealth(t *testing.T) {

	test := httptest.New(t, projectApi(db))
	test.GET("/").Expect().Status(iris.StatusNotFound)
	test.GET("/health").Expect().Status(iris.StatusOK).JSON().Object().Value("status").Equal("ok")
	test.GET("/healthz").Expect().Status(iris.StatusOK)
	if db != nil {
		test.GET("/ready").Expect().Status(iris.StatusOK)
	}
}

func TestProjectLifecycle(t *testing.T) {

	test := httptest.New(t, setup(t))
	now := time.Now().UTC().Format("2006-01-02 15:04:05.000000")
	yesterday := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)

	test.GET("/projects").Expect().Status(iris.StatusOK).JSON().Array().Empty()

	test.POST("/projects").WithJSON(body("name", "desc", now, yesterday)).
		Expect().Status(iris.StatusUnprocessableEntity)
	test.GET("/projects").Expect().JSON().Array().Length().Equal(0)

	created := test.POST("/projects").WithJSON(body("test", "", now, now)).
		Expect().Status(iris.StatusOK).JSON().Object()
	created.Value("name").Equal("test")
	created.Value("description").Equal("")
	id := int64(created.Value("id").Number().Raw())
	path := fmt.Sprintf("/projects/%d", id)

	list := test.GET("/projects").Expect().Status(iris.StatusOK).JSON().Array()
	list.Length().Equal(1)
	list.Element(0).Object().Value("name").Equal("test")

	test.PUT(path).WithJSON(body("test", "other_description", now, now)).
		Expect().Status(iris.StatusOK)
	test.GET(path).Expect().Status(iris.StatusOK).
		JSON().Object().Value("description").Equal("other_description")

	test.GET(path + "/feature").Expect().Status(iris.StatusOK).
		JSON().Object().Value("geometry").Object().Value("type").Equal("MultiPolygon")

	test.DELETE(path).Expect().Status(iris.StatusOK).JSON().String().Equal(database.DeletedMessage(id))
	test.GET(path).Expect().Status(iris.StatusNotFound)
	test.PUT(path).WithJSON(body("test", "", now, now)).Expect().Status(iris.StatusNotFound)
	test.DELETE(path).Expect().Status(iris.StatusNotFound)
	test.GET("/projects").Expect().JSON().Array().Empty()
}
