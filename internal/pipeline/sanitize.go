package pipeline

import (
	"fmt"
	"math"

	"deepdarshak/internal/models"
)

// earthRadiusKM is the mean Earth radius used for great-circle distances.
const earthRadiusKM = 6371.0

// DefaultMaxSpeedKPH is the plausibility threshold for derived vessel
// speed. 200 km/h (~108 knots) is generous for anything on water.
const DefaultMaxSpeedKPH = 200.0

// HaversineKM returns the great-circle distance between two lat/lon points
// in kilometers.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	lat1R := lat1 * math.Pi / 180
	lon1R := lon1 * math.Pi / 180
	lat2R := lat2 * math.Pi / 180
	lon2R := lon2 * math.Pi / 180
	dLat := lat2R - lat1R
	dLon := lon2R - lon1R

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1R)*math.Cos(lat2R)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Sanitize removes physically implausible points from a time-ordered track
// and reduces the result to at most maxPoints positions. Ascending
// timestamp order is a precondition of the caller; Sanitize never mutates
// its input and always returns a fresh slice.
//
// Invalid parameters are contract violations and return an error, unlike
// bad data points, which are silently dropped.
func Sanitize(track []models.Position, maxSpeedKPH float64, maxPoints int) ([]models.Position, error) {
	if maxPoints <= 0 {
		return nil, fmt.Errorf("max points must be positive, got %d", maxPoints)
	}
	if maxSpeedKPH <= 0 {
		return nil, fmt.Errorf("max speed must be positive, got %g", maxSpeedKPH)
	}
	return downsample(filterImplausible(track, maxSpeedKPH), maxPoints), nil
}

// filterImplausible is a single forward pass keeping one anchor: the last
// accepted point. A candidate whose derived speed from the anchor exceeds
// maxSpeedKPH is dropped and the anchor stays, so one bad fix does not
// poison the reference for the points after it. Points with a non-positive
// time delta or missing coordinates/timestamp are dropped the same way.
// There is no backtracking: a good point rejected against a bad anchor
// stays rejected.
func filterImplausible(track []models.Position, maxSpeedKPH float64) []models.Position {
	kept := make([]models.Position, 0, len(track))
	var anchor *models.Position

	for i := range track {
		p := track[i]
		if p.Lat == nil || p.Lon == nil || p.Timestamp == nil {
			continue
		}
		if anchor == nil {
			kept = append(kept, p)
			anchor = &track[i]
			continue
		}
		dt := p.Timestamp.Sub(*anchor.Timestamp).Seconds()
		if dt <= 0 {
			continue
		}
		distKM := HaversineKM(*anchor.Lat, *anchor.Lon, *p.Lat, *p.Lon)
		if distKM/(dt/3600) > maxSpeedKPH {
			continue
		}
		kept = append(kept, p)
		anchor = &track[i]
	}
	return kept
}

// downsample picks maxPoints evenly spaced elements, always keeping the
// first and the last. For maxPoints == 1 the final (most recent) point
// wins, since both endpoints cannot fit in one slot.
func downsample(track []models.Position, maxPoints int) []models.Position {
	n := len(track)
	if n <= maxPoints {
		return track
	}
	if maxPoints == 1 {
		return track[n-1 : n]
	}
	out := make([]models.Position, 0, maxPoints)
	for i := 0; i < maxPoints; i++ {
		idx := int(math.Round(float64(i) * float64(n-1) / float64(maxPoints-1)))
		out = append(out, track[idx])
	}
	return out
}
