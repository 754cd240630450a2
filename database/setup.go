package database

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//DeleteSchema cleans up the tables and data - useful for testing but not exposed to web
func DeleteSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, "DROP TABLE IF EXISTS project CASCADE")
	return err
}

//SetupSchema creates the required tables if they don't exist
func SetupSchema(ctx context.Context, db *pgxpool.Pool) error {

	var count int64
	err := db.QueryRow(ctx, "SELECT count(id) FROM project").Scan(&count)
	if err == nil {
		//table likely exists
		zap.L().Info("found project table", zap.Int64("rows", count))
		return nil
	}
	zap.L().Info("attempting to create tables")

	//date range is enforced here as well so no row can ever violate it
	createSql := `CREATE TABLE IF NOT EXISTS project(
	id bigserial primary key,
	name varchar(32) NOT NULL,
	description varchar(64) NOT NULL DEFAULT '',
	date_range_from timestamptz NOT NULL,
	date_range_to timestamptz NOT NULL,
	geo_file jsonb NOT NULL,
	updated_at timestamptz,
	CONSTRAINT project_date_range CHECK (date_range_to >= date_range_from)
);`
	if _, err := db.Exec(ctx, createSql); err != nil {
		return errors.Wrap(err, "unable to create project table")
	}
	return nil
}

//Ping checks the pool can still reach the database
func Ping(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, "SELECT 1")
	return err
}
