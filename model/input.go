package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const DateRangeMessage = "date_range_to cannot be smaller than date_range_from"

var validate = newValidator()

//ProjectInput is the client submitted field set for both create and update.
//Pointers distinguish a missing field from a zero value.
type ProjectInput struct {
	Name          *string       `json:"name" validate:"required,max=32"`
	Description   *string       `json:"description" validate:"omitempty,max=64"`
	DateRangeFrom *Timestamp    `json:"date_range_from" validate:"required"`
	DateRangeTo   *Timestamp    `json:"date_range_to" validate:"required"`
	GeoFile       *GeoFileInput `json:"geo_file" validate:"required"`

	//explicit null, a missing description is defaulted instead
	nullDescription bool
}

type GeoFileInput struct {
	Type     *string        `json:"type" validate:"required"`
	Geometry *GeometryInput `json:"geometry" validate:"required"`
}

type GeometryInput struct {
	Type        *string         `json:"type" validate:"required"`
	Coordinates [][][][]float64 `json:"coordinates" validate:"min=1,dive,min=1,dive,min=1,dive,len=2"`
}

const NullMessage = "may not be null"

//UnmarshalJSON decodes the fields as usual and records whether description was sent as null
func (in *ProjectInput) UnmarshalJSON(b []byte) error {
	type plain ProjectInput
	if err := json.Unmarshal(b, (*plain)(in)); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d, ok := raw[ProjectDescription]
	in.nullDescription = ok && bytes.Equal(bytes.TrimSpace(d), []byte("null"))
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

//Validate runs the field checks, defaults the description and then checks the date range.
//It returns a *ValidationError for any rejected input.
func (in *ProjectInput) Validate() error {
	if in == nil {
		return NewValidationError("body", "field required")
	}
	var verr *ValidationError
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.Wrap(err, "unable to validate project")
		}
		verr = fromValidatorErrors(verrs)
	}
	if in.nullDescription {
		if verr == nil {
			verr = &ValidationError{}
		}
		verr.Fields = append(verr.Fields, FieldError{Field: ProjectDescription, Message: NullMessage})
	}
	if verr != nil {
		return verr
	}

	if in.Description == nil {
		empty := ""
		in.Description = &empty
	}

	if in.DateRangeTo.Before(in.DateRangeFrom.Time) {
		return NewValidationError(ProjectDateRangeTo, DateRangeMessage)
	}
	return nil
}

//Project converts validated input into an entity without an id
func (in *ProjectInput) Project() *Project {
	p := &Project{
		Name:          *in.Name,
		DateRangeFrom: in.DateRangeFrom.Time,
		DateRangeTo:   in.DateRangeTo.Time,
		GeoFile: GeoFile{
			Type: *in.GeoFile.Type,
			Geometry: Geometry{
				Type:        *in.GeoFile.Geometry.Type,
				Coordinates: toMultiPolygon(in.GeoFile.Geometry.Coordinates),
			},
		},
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	return p
}

func toMultiPolygon(coords [][][][]float64) orb.MultiPolygon {
	mp := make(orb.MultiPolygon, 0, len(coords))
	for _, polygon := range coords {
		poly := make(orb.Polygon, 0, len(polygon))
		for _, ring := range polygon {
			r := make(orb.Ring, 0, len(ring))
			for _, pair := range ring {
				r = append(r, orb.Point{pair[0], pair[1]})
			}
			poly = append(poly, r)
		}
		mp = append(mp, poly)
	}
	return mp
}

func fromValidatorErrors(verrs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		out.Fields = append(out.Fields, FieldError{Field: field, Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	unit := "items"
	if fe.Kind() == reflect.String {
		unit = "characters"
	}
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("must contain at least %s %s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must contain at most %s %s", fe.Param(), unit)
	case "len":
		return fmt.Sprintf("must contain exactly %s %s", fe.Param(), unit)
	}
	return "failed " + fe.Tag() + " check"
}
