package encoding

import (
	"github.com/earthrise-media/projects/api/model"
	"github.com/paulmach/orb"
)

//GeoFileBound is the bounding box of every coordinate pair, false when there are none
func GeoFileBound(geo model.GeoFile) (orb.Bound, bool) {

	mp := geo.Geometry.Coordinates
	for _, polygon := range mp {
		for _, ring := range polygon {
			if len(ring) > 0 {
				return mp.Bound(), true
			}
		}
	}
	return orb.Bound{}, false
}
