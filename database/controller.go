package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/earthrise-media/projects/api/model"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//ProjectStore is everything the HTTP layer needs from persistence.
//Not found conditions are reported by wrapping model.ErrNotFound, rejected input as *model.ValidationError.
type ProjectStore interface {
	Create(ctx context.Context, in *model.ProjectInput) (*model.Project, error)
	FindAll(ctx context.Context) ([]*model.Project, error)
	FindById(ctx context.Context, id int64) (*model.Project, error)
	UpdateById(ctx context.Context, id int64, in *model.ProjectInput) (*model.Project, error)
	DeleteById(ctx context.Context, id int64) (string, error)
}

type ProjectController struct {
	db *pgxpool.Pool
}

var _ ProjectStore = (*ProjectController)(nil)

const projectColumns = "id, name, description, date_range_from, date_range_to, geo_file, updated_at"

func NewProjectController(db *pgxpool.Pool) *ProjectController {

	return &ProjectController{db: db}
}

//NotFound wraps model.ErrNotFound with the id that could not be resolved
func NotFound(id int64) error {
	return errors.Wrap(model.ErrNotFound, NotFoundMessage(id))
}

func NotFoundMessage(id int64) string {
	return fmt.Sprintf("Project with id `%d` does not exist!", id)
}

//DeletedMessage is the confirmation returned by a successful delete
func DeletedMessage(id int64) string {
	return fmt.Sprintf("Project with id '%d' is successfully deleted!", id)
}

//Create validates the input and inserts a new row, the database assigns the id
func (pc *ProjectController) Create(ctx context.Context, in *model.ProjectInput) (*model.Project, error) {

	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := in.Project()
	geo, err := toJSONB(p.GeoFile)
	if err != nil {
		return nil, err
	}

	sql := "INSERT INTO project(name, description, date_range_from, date_range_to, geo_file) VALUES($1, $2, $3, $4, $5) RETURNING " + projectColumns
	row := pc.db.QueryRow(ctx, sql, p.Name, p.Description, p.DateRangeFrom, p.DateRangeTo, geo)
	created, err := scanToProject(row)
	if err != nil {
		zap.S().Errorf("error adding project: %s", err.Error())
		return nil, errors.Wrap(err, "unable to add project")
	}
	return created, nil
}

//FindAll returns every project ordered by id, an empty table gives an empty slice
func (pc *ProjectController) FindAll(ctx context.Context) ([]*model.Project, error) {

	sql := "SELECT " + projectColumns + " FROM project ORDER BY id"
	rows, err := pc.db.Query(ctx, sql)
	if err != nil {
		zap.L().Error("error querying projects", zap.Error(err))
		return nil, errors.Wrap(err, "unable to query projects")
	}
	defer rows.Close()

	return scanToProjects(rows)
}

//FindById returns a single project based on the project id
func (pc *ProjectController) FindById(ctx context.Context, id int64) (*model.Project, error) {

	sql := "SELECT " + projectColumns + " FROM project WHERE id = $1"
	p, err := scanToProject(pc.db.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFound(id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read project %d", id)
	}
	return p, nil
}

//UpdateById replaces every mutable field of an existing project and stamps updated_at.
//The row is locked before the input is validated so a missing id is reported first.
func (pc *ProjectController) UpdateById(ctx context.Context, id int64, in *model.ProjectInput) (*model.Project, error) {

	tx, err := pc.db.Begin(ctx)
	if err != nil {
		zap.L().Error("error starting transaction", zap.Error(err))
		return nil, errors.Wrap(err, "unable to start transaction")
	}
	defer tx.Rollback(ctx)

	var existing int64
	err = tx.QueryRow(ctx, "SELECT id FROM project WHERE id = $1 FOR UPDATE", id).Scan(&existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFound(id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to lock project %d", id)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := in.Project()
	geo, err := toJSONB(p.GeoFile)
	if err != nil {
		return nil, err
	}

	sql := `UPDATE project SET name = $1, description = $2, date_range_from = $3, date_range_to = $4, geo_file = $5, updated_at = now()
WHERE id = $6 RETURNING ` + projectColumns
	updated, err := scanToProject(tx.QueryRow(ctx, sql, p.Name, p.Description, p.DateRangeFrom, p.DateRangeTo, geo, id))
	if err != nil {
		zap.S().Errorf("error updating project %d: %s", id, err.Error())
		return nil, errors.Wrapf(err, "unable to update project %d", id)
	}

	if err := tx.Commit(ctx); err != nil {
		zap.S().Errorf("error commiting: %s", err.Error())
		return nil, errors.Wrap(err, "unable to commit project update")
	}
	return updated, nil
}

//DeleteById removes a project permanently
func (pc *ProjectController) DeleteById(ctx context.Context, id int64) (string, error) {

	tag, err := pc.db.Exec(ctx, "DELETE FROM project WHERE id = $1", id)
	if err != nil {
		return "", errors.Wrapf(err, "unable to delete project %d", id)
	}
	if tag.RowsAffected() == 0 {
		return "", NotFound(id)
	}
	zap.S().Infof("deleted project %d", id)
	return DeletedMessage(id), nil
}

func toJSONB(geo model.GeoFile) (*pgtype.JSONB, error) {
	b, err := json.Marshal(geo)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode geo_file")
	}
	return &pgtype.JSONB{Bytes: b, Status: pgtype.Present}, nil
}

//scanToProject scans a single row into a Project
func scanToProject(row pgx.Row) (*model.Project, error) {

	var p model.Project
	var geo pgtype.JSONB
	var updatedAt pgtype.Timestamptz
	err := row.Scan(&p.Id, &p.Name, &p.Description, &p.DateRangeFrom, &p.DateRangeTo, &geo, &updatedAt)
	if err != nil {
		return nil, err
	}
	if geo.Status == pgtype.Present {
		if err := json.Unmarshal(geo.Bytes, &p.GeoFile); err != nil {
			zap.S().Warnf("error decoding geo_file of project %d: %s", p.Id, err.Error())
			return nil, errors.Wrap(err, "unable to decode geo_file")
		}
	}
	if updatedAt.Status == pgtype.Present {
		t := updatedAt.Time
		p.UpdatedAt = &t
	}
	return &p, nil
}

func scanToProjects(rows pgx.Rows) ([]*model.Project, error) {

	projects := make([]*model.Project, 0)
	for rows.Next() {
		p, err := scanToProject(rows)
		if err != nil {
			zap.S().Warnf("error scanning row: %s", err.Error())
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read projects")
	}
	zap.L().Debug("returned ", zap.Int("projects", len(projects)))
	return projects, nil
}
