package pipeline_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	geom "github.com/twpayne/go-geom"

	"deepdarshak/internal/models"
	"deepdarshak/internal/pipeline"
)

func TestEncodeFeatures_CoordinateOrderLonLat(t *testing.T) {
	track := []models.Position{pos("211000000", t0, 48.85, 2.35)}

	fc := pipeline.EncodeFeatures(track)
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}

	pt, ok := fc.Features[0].Geometry.(*geom.Point)
	if !ok {
		t.Fatalf("geometry is %T, want *geom.Point", fc.Features[0].Geometry)
	}
	coords := pt.Coords()
	if coords[0] != 2.35 || coords[1] != 48.85 {
		t.Errorf("coordinates %v, want [lon lat] = [2.35 48.85]", coords)
	}
}

func TestEncodeFeatures_SkipsMissingCoordinates(t *testing.T) {
	track := []models.Position{
		pos("211000000", t0, 1, 2),
		{MMSI: "211000000", Timestamp: tptr(t0.Add(time.Minute)), Lon: fptr(2)},
		{MMSI: "211000000", Timestamp: tptr(t0.Add(2 * time.Minute)), Lat: fptr(1)},
		pos("211000000", t0.Add(3*time.Minute), 1.1, 2.1),
	}

	fc := pipeline.EncodeFeatures(track)
	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}
}

func TestEncodeFeatures_MissingAttributesBecomeNull(t *testing.T) {
	p := pos("211000000", t0, 1, 2)
	p.SOG = fptr(12.5)
	// COG and heading absent
	withoutTS := models.Position{MMSI: "211000000", Lat: fptr(1), Lon: fptr(2)}

	fc := pipeline.EncodeFeatures([]models.Position{p, withoutTS})
	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}

	props := fc.Features[0].Properties
	if props["sog"] != 12.5 {
		t.Errorf("sog = %v, want 12.5", props["sog"])
	}
	if props["cog"] != nil || props["heading"] != nil {
		t.Errorf("missing attributes not null: cog=%v heading=%v", props["cog"], props["heading"])
	}
	if props["timestamp"] != "2024-03-01T12:00:00Z" {
		t.Errorf("timestamp = %v, want 2024-03-01T12:00:00Z", props["timestamp"])
	}
	if fc.Features[1].Properties["timestamp"] != nil {
		t.Errorf("record without timestamp: property should be null")
	}
}

func TestEncodeFeatures_OrderPreservedAndMarshals(t *testing.T) {
	track := []models.Position{
		pos("211000000", t0, 1, 10),
		pos("211000000", t0.Add(time.Minute), 2, 20),
		pos("211000000", t0.Add(2*time.Minute), 3, 30),
	}

	fc := pipeline.EncodeFeatures(track)
	for i, want := range []float64{1, 2, 3} {
		pt := fc.Features[i].Geometry.(*geom.Point)
		if pt.Coords()[1] != want {
			t.Errorf("feature %d lat = %v, want %v", i, pt.Coords()[1], want)
		}
	}

	b, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"FeatureCollection"`) || !strings.Contains(s, `"Point"`) {
		t.Errorf("unexpected GeoJSON payload: %s", s)
	}
}

func TestEncodeFeatures_Empty(t *testing.T) {
	fc := pipeline.EncodeFeatures(nil)
	if fc == nil || len(fc.Features) != 0 {
		t.Fatal("empty track should encode to an empty collection")
	}
}

func TestTrackLine(t *testing.T) {
	if _, err := pipeline.TrackLine(nil); err == nil {
		t.Error("empty track: expected error")
	}
	if _, err := pipeline.TrackLine([]models.Position{pos("211000000", t0, 1, 2)}); err == nil {
		t.Error("single point: expected error")
	}

	track := []models.Position{
		pos("211000000", t0, 1, 10),
		{MMSI: "211000000", Timestamp: tptr(t0.Add(time.Minute))}, // no coords, skipped
		pos("211000000", t0.Add(2*time.Minute), 2, 20),
	}
	f, err := pipeline.TrackLine(track)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line, ok := f.Geometry.(*geom.LineString)
	if !ok {
		t.Fatalf("geometry is %T, want *geom.LineString", f.Geometry)
	}
	if line.NumCoords() != 2 {
		t.Fatalf("expected 2 vertices, got %d", line.NumCoords())
	}
	if c := line.Coord(0); c[0] != 10 || c[1] != 1 {
		t.Errorf("first vertex %v, want [10 1]", c)
	}
}
