package pipeline

import (
	"errors"
	"time"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"deepdarshak/internal/models"
)

// EncodeFeatures converts a sanitized track into a GeoJSON feature
// collection of point features, one per position, in input order.
// Coordinates are [longitude, latitude]. Records without coordinates are
// skipped; missing motion attributes become null properties.
func EncodeFeatures(track []models.Position) *geojson.FeatureCollection {
	features := make([]*geojson.Feature, 0, len(track))
	for i := range track {
		p := &track[i]
		if p.Lat == nil || p.Lon == nil {
			continue
		}
		var ts interface{}
		if p.Timestamp != nil {
			ts = p.Timestamp.UTC().Format(time.RFC3339)
		}
		features = append(features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{*p.Lon, *p.Lat}),
			Properties: map[string]interface{}{
				"timestamp": ts,
				"sog":       nullableFloat(p.SOG),
				"cog":       nullableFloat(p.COG),
				"heading":   nullableFloat(p.Heading),
			},
		})
	}
	return &geojson.FeatureCollection{Features: features}
}

// ErrDegenerateTrack is returned when a track has too few renderable
// positions to form a line.
var ErrDegenerateTrack = errors.New("track has fewer than two renderable positions")

// TrackLine builds a single LineString feature tracing the track's path.
// It fails explicitly on degenerate tracks; the caller decides whether a
// missing line is acceptable.
func TrackLine(track []models.Position) (*geojson.Feature, error) {
	coords := make([]float64, 0, 2*len(track))
	for i := range track {
		p := &track[i]
		if p.Lat == nil || p.Lon == nil {
			continue
		}
		coords = append(coords, *p.Lon, *p.Lat)
	}
	if len(coords) < 4 {
		return nil, ErrDegenerateTrack
	}
	return &geojson.Feature{
		Geometry: geom.NewLineStringFlat(geom.XY, coords),
	}, nil
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
