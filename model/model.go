package model

import (
	"time"

	"github.com/paulmach/orb"
)

// property keys used when a project is exposed as a GeoJSON feature
const (
	ProjectId            = "id"
	ProjectName          = "name"
	ProjectDescription   = "description"
	ProjectDateRangeFrom = "date_range_from"
	ProjectDateRangeTo   = "date_range_to"
	ProjectGeoFileType   = "geo_file_type"
	ProjectGeometryType  = "geometry_type"
)

type Project struct {
	Id            int64
	Name          string
	Description   string
	DateRangeFrom time.Time
	DateRangeTo   time.Time
	GeoFile       GeoFile
	//UpdatedAt stays nil until the first update
	UpdatedAt *time.Time
}

//GeoFile is a simplified GeoJSON feature. It is stored as a single JSON document.
type GeoFile struct {
	Type     string   `json:"type"`
	Geometry Geometry `json:"geometry"`
}

//Geometry coordinates are rings of point groups of [x, y] pairs, which is exactly the shape of a MultiPolygon
type Geometry struct {
	Type        string           `json:"type"`
	Coordinates orb.MultiPolygon `json:"coordinates"`
}
