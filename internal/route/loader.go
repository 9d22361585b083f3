// Package route loads survey-route shapefiles and prepares them for the
// external map renderer: geometries, sector color assignments and label
// anchors, exported as GeoJSON. Coordinate reprojection is out of scope;
// the files are expected to already be in the renderer's CRS.
package route

import (
	"context"
	"strings"
	"sync"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	geom "github.com/twpayne/go-geom"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LayerType distinguishes the three shapefile layers of a survey area.
type LayerType string

const (
	LayerLine    LayerType = "line"
	LayerPolygon LayerType = "polygon"
	LayerPoint   LayerType = "point"
)

// layerOrder is the rendering and color-assignment order.
var layerOrder = []LayerType{LayerLine, LayerPolygon, LayerPoint}

// LayerSpec describes one shapefile of an area.
type LayerSpec struct {
	Path         string    `yaml:"path" mapstructure:"path"`
	Type         LayerType `yaml:"type" mapstructure:"type"`
	Name         string    `yaml:"name" mapstructure:"name"`
	SectorColumn string    `yaml:"sector_column" mapstructure:"sector_column"` // default "sector"
}

// AreaSpec describes one survey area: its layers plus the sector prefixes
// whose sub-sectors collapse for coloring.
type AreaSpec struct {
	Name          string      `yaml:"name" mapstructure:"name"`
	Layers        []LayerSpec `yaml:"layers" mapstructure:"layers"`
	SectorMerge   []string    `yaml:"sector_merge" mapstructure:"sector_merge"`
	FixedPolygons string      `yaml:"fixed_polygon_color" mapstructure:"fixed_polygon_color"` // override: all polygons one color
}

// Feature is one renderable route feature.
type Feature struct {
	Layer     string
	Type      LayerType
	Sector    string // normalized
	RawSector string
	Name      string // display name attribute, when the layer has one
	Label     string // point label, e.g. "시작: 합류부"
	Geometry  geom.T
}

// Area is a fully loaded survey area ready for GeoJSON export.
type Area struct {
	Name     string
	Features []Feature
	Colors   map[string]string
	Bounds   *geom.Bounds
	// FixedPolygonColor, when set, pins every polygon feature to one color
	// instead of its sector color (estuary zone outlines work this way).
	FixedPolygonColor string
}

// FeatureColor resolves the display color for a feature.
func (a *Area) FeatureColor(f Feature) string {
	if f.Type == LayerPolygon && a.FixedPolygonColor != "" {
		return a.FixedPolygonColor
	}
	return colorFor(a.Colors, f.Sector)
}

// Center returns the midpoint of the area's bounds as (lon, lat), with a
// Korea-centered default when the area is empty.
func (a *Area) Center() (float64, float64) {
	if a.Bounds == nil || a.Bounds.IsEmpty() {
		return 127.0, 37.5
	}
	return (a.Bounds.Min(0) + a.Bounds.Max(0)) / 2, (a.Bounds.Min(1) + a.Bounds.Max(1)) / 2
}

// LoadArea reads every layer of an area concurrently and assembles the
// combined feature list, color map and bounds.
func LoadArea(ctx context.Context, spec AreaSpec) (*Area, error) {
	log := zap.L().With(
		zap.String("component", "route.loader"),
		zap.String("area", spec.Name),
	)

	norm := Normalizer{Collapse: spec.SectorMerge}

	var mu sync.Mutex
	byType := make(map[LayerType][]Feature)

	g, _ := errgroup.WithContext(ctx)
	for _, layer := range spec.Layers {
		g.Go(func() error {
			features, err := loadLayer(layer, norm)
			if err != nil {
				return err
			}
			mu.Lock()
			byType[layer.Type] = append(byType[layer.Type], features...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrapf(err, "route: load area %s", spec.Name)
	}

	// Stitch layers back together in render order so color assignment is
	// deterministic regardless of which goroutine finished first.
	var features []Feature
	for _, lt := range layerOrder {
		features = append(features, byType[lt]...)
	}

	bounds := geom.NewBounds(geom.XY)
	for _, f := range features {
		bounds = bounds.Extend(f.Geometry)
	}

	area := &Area{
		Name:              spec.Name,
		Features:          features,
		Colors:            buildColorMap(features),
		Bounds:            bounds,
		FixedPolygonColor: spec.FixedPolygons,
	}

	log.Info("area loaded",
		zap.Int("features", len(features)),
		zap.Int("sectors", len(area.Colors)),
	)
	return area, nil
}

// loadLayer reads a single shapefile into features.
func loadLayer(spec LayerSpec, norm Normalizer) ([]Feature, error) {
	reader, err := shp.Open(spec.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "route: open shapefile %s", spec.Path)
	}
	defer func() { _ = reader.Close() }()

	sectorCol := spec.SectorColumn
	if sectorCol == "" {
		sectorCol = "sector"
	}
	sectorIdx := fieldIndex(reader, sectorCol)
	nameIdx := fieldIndex(reader, "name")
	startEndIdx := fieldIndex(reader, "startend")
	locationIdx := fieldIndex(reader, "location")

	attr := func(idx int) string {
		if idx < 0 {
			return ""
		}
		return strings.TrimSpace(reader.Attribute(idx))
	}

	var features []Feature
	for reader.Next() {
		_, shape := reader.Shape()
		g := shapeToGeom(shape)
		if g == nil {
			continue
		}

		raw := attr(sectorIdx)
		f := Feature{
			Layer:     spec.Name,
			Type:      spec.Type,
			Sector:    norm.Normalize(raw),
			RawSector: raw,
			Name:      attr(nameIdx),
			Geometry:  g,
		}

		if spec.Type == LayerPoint {
			f.Label = pointLabel(attr(startEndIdx), attr(locationIdx))
		}

		features = append(features, f)
	}

	return features, nil
}

// pointLabel builds the start/end marker label shown next to route points.
func pointLabel(startEnd, location string) string {
	switch {
	case startEnd != "" && location != "":
		return startEnd + ": " + location
	case location != "":
		return location
	default:
		return ""
	}
}

// fieldIndex finds a shapefile attribute column case-insensitively, -1 if
// absent. DBF field names are NUL-padded.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
