package route

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// EncodeGeoJSON renders an area as a GeoJSON FeatureCollection with the
// display properties the external renderer needs: layer, sector, color,
// display label and a label anchor at the feature's bounds midpoint.
func EncodeGeoJSON(a *Area) ([]byte, error) {
	fc := geojson.FeatureCollection{}

	for _, f := range a.Features {
		props := map[string]interface{}{
			"layer":  f.Layer,
			"type":   string(f.Type),
			"sector": f.Sector,
			"color":  a.FeatureColor(f),
		}

		if name := f.DisplayName(); name != "" {
			props["label"] = name
		}
		if f.Label != "" {
			props["point_label"] = f.Label
		}

		if b := f.Geometry.Bounds(); b != nil && !b.IsEmpty() {
			props["anchor"] = []float64{
				(b.Min(0) + b.Max(0)) / 2,
				(b.Min(1) + b.Max(1)) / 2,
			}
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   f.Geometry,
			Properties: props,
		})
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return nil, eris.Wrapf(err, "route: encode area %s", a.Name)
	}
	return data, nil
}

// DisplayName picks the label shown on the map: the name attribute when
// the layer carries one, the sector otherwise.
func (f Feature) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Sector
}
