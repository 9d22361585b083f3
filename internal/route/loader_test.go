package route

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// padAttr space-pads a DBF string value to its field width. go-shp's writer
// fills unset record bytes with NULs, which real DBF exports pad with spaces;
// padding here keeps the fixtures standards-shaped.
func padAttr(s string, size int) string {
	for len(s) < size {
		s += " "
	}
	return s
}

// writePointShapefile writes a point shapefile with sector/startend/location
// attributes, mimicking the field GPS exports.
func writePointShapefile(t *testing.T, dir string, rows []struct {
	x, y                       float64
	sector, startEnd, location string
}) string {
	t.Helper()
	path := filepath.Join(dir, "points.shp")

	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	w.SetFields([]shp.Field{
		shp.StringField("SECTOR", 25),
		shp.StringField("STARTEND", 25),
		shp.StringField("LOCATION", 50),
	})

	for _, r := range rows {
		n := w.Write(&shp.Point{X: r.x, Y: r.y})
		require.NoError(t, w.WriteAttribute(int(n), 0, padAttr(r.sector, 25)))
		require.NoError(t, w.WriteAttribute(int(n), 1, padAttr(r.startEnd, 25)))
		require.NoError(t, w.WriteAttribute(int(n), 2, padAttr(r.location, 50)))
	}
	w.Close()
	// go-shp v0.1.1's Writer drops the dot when naming the attribute table
	// (SetFields writes "<base>dbf"); move it where the Reader looks.
	base := path[:len(path)-len(".shp")]
	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	return path
}

func writeLineShapefile(t *testing.T, dir string, sectors []string) string {
	t.Helper()
	path := filepath.Join(dir, "lines.shp")

	w, err := shp.Create(path, shp.POLYLINE)
	require.NoError(t, err)
	w.SetFields([]shp.Field{shp.StringField("SECTOR", 25)})

	for i, sector := range sectors {
		x := float64(i)
		line := &shp.PolyLine{
			NumParts:  1,
			NumPoints: 2,
			Parts:     []int32{0},
			Points:    []shp.Point{{X: x, Y: 0}, {X: x + 1, Y: 1}},
		}
		n := w.Write(line)
		require.NoError(t, w.WriteAttribute(int(n), 0, padAttr(sector, 25)))
	}
	w.Close()
	base := path[:len(path)-len(".shp")]
	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	return path
}

func TestLoadArea(t *testing.T) {
	dir := t.TempDir()
	linePath := writeLineShapefile(t, dir, []string{"하천1", "하천2", "하천6-1", "하천6-2"})
	pointPath := writePointShapefile(t, dir, []struct {
		x, y                       float64
		sector, startEnd, location string
	}{
		{x: 0.5, y: 0.5, sector: "하천1", startEnd: "시작", location: "합류부"},
		{x: 1.5, y: 0.5, sector: "하천2", startEnd: "", location: "다리"},
	})

	spec := AreaSpec{
		Name: "하천",
		Layers: []LayerSpec{
			{Path: pointPath, Type: LayerPoint, Name: "markers"},
			{Path: linePath, Type: LayerLine, Name: "routes"},
		},
		SectorMerge: []string{"하천6"},
	}

	area, err := LoadArea(context.Background(), spec)
	require.NoError(t, err)

	require.Len(t, area.Features, 6)

	// Lines render (and take colors) before points regardless of load order.
	assert.Equal(t, LayerLine, area.Features[0].Type)
	assert.Equal(t, LayerPoint, area.Features[4].Type)

	// Sub-sectors collapse onto their parent and share one color.
	assert.Equal(t, "하천6", area.Features[2].Sector)
	assert.Equal(t, "하천6-1", area.Features[2].RawSector)
	assert.Equal(t, area.Features[2].Sector, area.Features[3].Sector)

	assert.Len(t, area.Colors, 3)
	assert.Equal(t, "red", area.Colors["하천1"])
	assert.Equal(t, "blue", area.Colors["하천2"])
	assert.Equal(t, "green", area.Colors["하천6"])

	// Point labels combine the start/end marker with the location.
	assert.Equal(t, "시작: 합류부", area.Features[4].Label)
	assert.Equal(t, "다리", area.Features[5].Label)

	require.NotNil(t, area.Bounds)
	lon, lat := area.Center()
	assert.InDelta(t, 2.0, lon, 0.001)
	assert.InDelta(t, 0.5, lat, 0.001)
}

func TestLoadAreaSectorColumnCaseInsensitive(t *testing.T) {
	// The fixture writes SECTOR in caps; the default lookup is "sector".
	dir := t.TempDir()
	path := writeLineShapefile(t, dir, []string{"하천1"})

	area, err := LoadArea(context.Background(), AreaSpec{
		Name:   "test",
		Layers: []LayerSpec{{Path: path, Type: LayerLine, Name: "routes"}},
	})
	require.NoError(t, err)
	require.Len(t, area.Features, 1)
	assert.Equal(t, "하천1", area.Features[0].Sector)
}

func TestLoadAreaMissingSectorColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeLineShapefile(t, dir, []string{"하천1"})

	area, err := LoadArea(context.Background(), AreaSpec{
		Name:   "test",
		Layers: []LayerSpec{{Path: path, Type: LayerLine, Name: "routes", SectorColumn: "zone"}},
	})
	require.NoError(t, err)
	require.Len(t, area.Features, 1)
	assert.Empty(t, area.Features[0].Sector, "absent column reads as blank, not an error")
}

func TestLoadAreaMissingFile(t *testing.T) {
	_, err := LoadArea(context.Background(), AreaSpec{
		Name:   "test",
		Layers: []LayerSpec{{Path: filepath.Join(t.TempDir(), "nope.shp"), Type: LayerLine, Name: "routes"}},
	})
	assert.Error(t, err)
}

func TestAreaCenterEmpty(t *testing.T) {
	area := &Area{}
	lon, lat := area.Center()
	assert.Equal(t, 127.0, lon)
	assert.Equal(t, 37.5, lat)
}
