package handler

import (
	"github.com/earthrise-media/projects/api/database"
	"github.com/earthrise-media/projects/api/model"
	"github.com/kataras/iris/v12"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//fail writes a problem document. Store errors that are neither validation nor not found never reach the client.
func fail(ctx iris.Context, id int64, err error) {

	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		ctx.Problem(iris.NewProblem().Type("/projects").
			Title("invalid project").
			Status(iris.StatusUnprocessableEntity).
			Detail(verr.Error()).
			Key("errors", verr.Fields))
	case errors.Is(err, model.ErrNotFound):
		ctx.Problem(iris.NewProblem().Type("/projects").
			Title("project not found").
			Status(iris.StatusNotFound).
			Detail(database.NotFoundMessage(id)))
	default:
		zap.L().Error("project request failed",
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Error(err))
		ctx.Problem(iris.NewProblem().Type("/projects").
			Title("internal error").
			Status(iris.StatusInternalServerError).
			Detail("database issue"))
	}
}
