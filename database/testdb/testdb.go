//Package testdb hands tests a scratch Postgres database.
//If PGHOST is set that server is used, with POSTGRES_DOCKER=1 a throwaway container is started instead.
package testdb

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

const (
	image    = "postgres:13-alpine"
	user     = "postgres"
	password = "password"
	dbName   = "projects"
)

//ErrUnavailable means no database was configured for this test run
var ErrUnavailable = errors.New("no test database: set PGHOST or POSTGRES_DOCKER=1")

//Connect returns a pool and a function releasing it along with any container that was started
func Connect(ctx context.Context) (*pgxpool.Pool, func(), error) {

	if os.Getenv("POSTGRES_DOCKER") == "1" {
		return startContainer(ctx)
	}
	if os.Getenv("PGHOST") == "" {
		return nil, nil, ErrUnavailable
	}
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		env("PGUSER", user), env("PGPASSWORD", password), os.Getenv("PGHOST"), env("PGPORT", "5432"), env("PGDATABASE", dbName))
	pool, err := waitForPool(ctx, connString, 5*time.Second)
	if err != nil {
		return nil, nil, err
	}
	return pool, pool.Close, nil
}

func startContainer(ctx context.Context) (*pgxpool.Pool, func(), error) {

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to create docker client")
	}

	reader, err := cli.ImagePull(ctx, image, types.ImagePullOptions{})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to pull %s", image)
	}
	_, _ = io.Copy(ioutil.Discard, reader)
	reader.Close()

	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		return nil, nil, err
	}
	created, err := cli.ContainerCreate(ctx,
		&container.Config{
			Image:        image,
			Env:          []string{"POSTGRES_USER=" + user, "POSTGRES_PASSWORD=" + password, "POSTGRES_DB=" + dbName},
			ExposedPorts: nat.PortSet{port: struct{}{}},
		},
		&container.HostConfig{
			PortBindings: nat.PortMap{port: []nat.PortBinding{{HostIP: "127.0.0.1"}}},
		},
		nil, nil, "")
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to create postgres container")
	}
	remove := func() {
		_ = cli.ContainerRemove(context.Background(), created.ID, types.ContainerRemoveOptions{Force: true, RemoveVolumes: true})
		cli.Close()
	}

	if err := cli.ContainerStart(ctx, created.ID, types.ContainerStartOptions{}); err != nil {
		remove()
		return nil, nil, errors.Wrap(err, "unable to start postgres container")
	}
	info, err := cli.ContainerInspect(ctx, created.ID)
	if err != nil {
		remove()
		return nil, nil, errors.Wrap(err, "unable to inspect postgres container")
	}
	bindings := info.NetworkSettings.Ports[port]
	if len(bindings) == 0 {
		remove()
		return nil, nil, errors.New("postgres container has no published port")
	}

	connString := fmt.Sprintf("postgres://%s:%s@127.0.0.1:%s/%s", user, password, bindings[0].HostPort, dbName)
	pool, err := waitForPool(ctx, connString, 60*time.Second)
	if err != nil {
		remove()
		return nil, nil, err
	}
	return pool, func() {
		pool.Close()
		remove()
	}, nil
}

//waitForPool retries until the server accepts queries, a fresh container restarts once during init
func waitForPool(ctx context.Context, connString string, timeout time.Duration) (*pgxpool.Pool, error) {

	deadline := time.Now().Add(timeout)
	for {
		pool, err := pgxpool.Connect(ctx, connString)
		if err == nil {
			if _, err = pool.Exec(ctx, "SELECT 1"); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		if time.Now().After(deadline) {
			return nil, errors.Wrap(err, "database did not become ready")
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
