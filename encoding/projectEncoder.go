package encoding

import (
	"time"

	"github.com/earthrise-media/projects/api/model"
	"github.com/paulmach/orb/geojson"
)

//ProjectResponse is the submitted field set plus the assigned id
type ProjectResponse struct {
	Id            int64         `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	DateRangeFrom time.Time     `json:"date_range_from"`
	DateRangeTo   time.Time     `json:"date_range_to"`
	GeoFile       model.GeoFile `json:"geo_file"`
}

func ToResponse(project *model.Project) ProjectResponse {
	return ProjectResponse{
		Id:            project.Id,
		Name:          project.Name,
		Description:   project.Description,
		DateRangeFrom: project.DateRangeFrom,
		DateRangeTo:   project.DateRangeTo,
		GeoFile:       project.GeoFile,
	}
}

//ToResponses never returns nil so an empty list encodes as []
func ToResponses(projects []*model.Project) []ProjectResponse {

	out := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		out = append(out, ToResponse(project))
	}
	return out
}

//ProjectToGeoJsonFeature exposes the project geometry as a MultiPolygon feature
func ProjectToGeoJsonFeature(project *model.Project) *geojson.Feature {

	feat := geojson.NewFeature(project.GeoFile.Geometry.Coordinates)
	feat.ID = project.Id
	if bound, ok := GeoFileBound(project.GeoFile); ok {
		feat.BBox = geojson.NewBBox(bound)
	}
	feat.Properties[model.ProjectId] = project.Id
	feat.Properties[model.ProjectName] = project.Name
	feat.Properties[model.ProjectDescription] = project.Description
	feat.Properties[model.ProjectDateRangeFrom] = project.DateRangeFrom.Format(time.RFC3339Nano)
	feat.Properties[model.ProjectDateRangeTo] = project.DateRangeTo.Format(time.RFC3339Nano)
	feat.Properties[model.ProjectGeoFileType] = project.GeoFile.Type
	feat.Properties[model.ProjectGeometryType] = project.GeoFile.Geometry.Type
	return feat
}
