package handler

import (
	"encoding/json"

	"github.com/earthrise-media/projects/api/database"
	"github.com/earthrise-media/projects/api/encoding"
	"github.com/earthrise-media/projects/api/model"
	"github.com/kataras/iris/v12"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	ProjectStore database.ProjectStore
}

//Register mounts the project routes, ids that are not integers never match and give a 404
func (ph *ProjectHandler) Register(projects iris.Party) {

	projects.Get("/", ph.GetProjects)
	projects.Post("/", ph.CreateProject)
	projects.Get("/{id:int64}", ph.GetProjectById)
	projects.Get("/{id:int64}/feature", ph.GetProjectFeature)
	projects.Put("/{id:int64}", ph.UpdateProject)
	projects.Delete("/{id:int64}", ph.DeleteProject)
}

func (ph *ProjectHandler) GetProjects(ctx iris.Context) {

	projects, err := ph.ProjectStore.FindAll(ctx.Request().Context())
	if err != nil {
		fail(ctx, 0, err)
		return
	}
	ctx.JSON(encoding.ToResponses(projects))
}

func (ph *ProjectHandler) GetProjectById(ctx iris.Context) {

	id := ctx.Params().GetInt64Default("id", 0)
	project, err := ph.ProjectStore.FindById(ctx.Request().Context(), id)
	if err != nil {
		fail(ctx, id, err)
		return
	}
	ctx.JSON(encoding.ToResponse(project))
}

func (ph *ProjectHandler) GetProjectFeature(ctx iris.Context) {

	id := ctx.Params().GetInt64Default("id", 0)
	project, err := ph.ProjectStore.FindById(ctx.Request().Context(), id)
	if err != nil {
		fail(ctx, id, err)
		return
	}
	ctx.JSON(encoding.ProjectToGeoJsonFeature(project))
}

func (ph *ProjectHandler) CreateProject(ctx iris.Context) {

	in, err := readInput(ctx)
	if err != nil {
		fail(ctx, 0, err)
		return
	}
	project, err := ph.ProjectStore.Create(ctx.Request().Context(), in)
	if err != nil {
		fail(ctx, 0, err)
		return
	}
	zap.L().Info("created project", zap.Int64("id", project.Id))
	ctx.JSON(encoding.ToResponse(project))
}

func (ph *ProjectHandler) UpdateProject(ctx iris.Context) {

	id := ctx.Params().GetInt64Default("id", 0)
	in, err := readInput(ctx)
	if err != nil {
		fail(ctx, id, err)
		return
	}
	project, err := ph.ProjectStore.UpdateById(ctx.Request().Context(), id, in)
	if err != nil {
		fail(ctx, id, err)
		return
	}
	ctx.JSON(encoding.ToResponse(project))
}

func (ph *ProjectHandler) DeleteProject(ctx iris.Context) {

	id := ctx.Params().GetInt64Default("id", 0)
	msg, err := ph.ProjectStore.DeleteById(ctx.Request().Context(), id)
	if err != nil {
		fail(ctx, id, err)
		return
	}
	ctx.JSON(msg)
}

//readInput turns any body that does not decode into the input shape into a validation error
func readInput(ctx iris.Context) (*model.ProjectInput, error) {

	var in model.ProjectInput
	if err := ctx.ReadJSON(&in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, model.NewValidationError(typeErr.Field, "expected "+typeErr.Type.String())
		}
		return nil, model.NewValidationError("body", err.Error())
	}
	return &in, nil
}
