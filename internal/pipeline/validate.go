package pipeline

import (
	"strconv"
	"strings"
	"time"

	"deepdarshak/internal/models"
)

// nonCriticalFields maps batch column names to their accessor on a raw row.
// Only columns actually present in a batch's schema are checked for the
// missing_non_critical flag; a column the source never sends is not a gap.
var nonCriticalFields = map[string]func(*models.RawPosition) *string{
	"vessel_name": func(r *models.RawPosition) *string { return r.VesselName },
	"imo":         func(r *models.RawPosition) *string { return r.IMO },
	"call_sign":   func(r *models.RawPosition) *string { return r.CallSign },
	"vessel_type": func(r *models.RawPosition) *string { return r.VesselType },
	"length":      func(r *models.RawPosition) *string { return r.Length },
	"width":       func(r *models.RawPosition) *string { return r.Width },
	"draft":       func(r *models.RawPosition) *string { return r.Draft },
	"cargo":       func(r *models.RawPosition) *string { return r.Cargo },
	"destination": func(r *models.RawPosition) *string { return r.Destination },
	"eta":         func(r *models.RawPosition) *string { return r.ETA },
	"nav_status":  func(r *models.RawPosition) *string { return r.NavStatus },
}

// ValidateBatch turns a raw ingestion batch into cleaned, flagged position
// records. columns lists the field names present in this batch's source
// schema. Rows with a missing or malformed MMSI, a missing timestamp, or a
// non-numeric/out-of-range coordinate are dropped and counted, never
// reported individually. Rows sharing (MMSI, timestamp) are kept but
// flagged; rows identical across every field collapse to one. Duplicate
// detection is scoped to the given batch.
//
// Cleaned rows come back in their original relative order together with
// dropped = len(rows) - len(cleaned).
func ValidateBatch(rows []models.RawPosition, columns []string) ([]models.Position, int) {
	cleaned := make([]models.Position, 0, len(rows))

	for i := range rows {
		r := &rows[i]
		if r.MMSI == "" || r.Timestamp == nil {
			continue
		}
		if !isValidMMSI(r.MMSI) {
			continue
		}
		lat, ok := parseCoord(r.Lat, 90)
		if !ok {
			continue
		}
		lon, ok := parseCoord(r.Lon, 180)
		if !ok {
			continue
		}

		p := models.Position{
			MMSI:        r.MMSI,
			Timestamp:   r.Timestamp,
			Lat:         &lat,
			Lon:         &lon,
			SOG:         r.SOG,
			COG:         r.COG,
			Heading:     r.Heading,
			VesselName:  r.VesselName,
			IMO:         r.IMO,
			CallSign:    r.CallSign,
			VesselType:  r.VesselType,
			Length:      r.Length,
			Width:       r.Width,
			Draft:       r.Draft,
			Cargo:       r.Cargo,
			Destination: r.Destination,
			ETA:         r.ETA,
			NavStatus:   r.NavStatus,
		}

		if lat == 0 && lon == 0 {
			p.Flags |= models.FlagZeroPosition
		}
		for _, col := range columns {
			field, known := nonCriticalFields[col]
			if !known {
				continue
			}
			if field(r) == nil {
				p.Flags |= models.FlagMissingNonCritical
				break
			}
		}

		cleaned = append(cleaned, p)
	}

	flagSameTimeDuplicates(cleaned)
	cleaned = dropExactDuplicates(cleaned)

	return cleaned, len(rows) - len(cleaned)
}

// flagSameTimeDuplicates marks every row that shares (MMSI, timestamp) with
// another row in the batch, regardless of the remaining fields.
func flagSameTimeDuplicates(rows []models.Position) {
	counts := make(map[string]int, len(rows))
	for i := range rows {
		counts[timeKey(&rows[i])]++
	}
	for i := range rows {
		if counts[timeKey(&rows[i])] > 1 {
			rows[i].Flags |= models.FlagSameTimeDuplicate
		}
	}
}

// dropExactDuplicates collapses rows whose every field is identical,
// keeping the first occurrence.
func dropExactDuplicates(rows []models.Position) []models.Position {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for i := range rows {
		key := contentKey(&rows[i])
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rows[i])
	}
	return out
}

func isValidMMSI(s string) bool {
	if len(s) != 9 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// parseCoord coerces a textual coordinate to a float and range-checks it
// against [-bound, bound].
func parseCoord(s *string, bound float64) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return 0, false
	}
	if v < -bound || v > bound {
		return 0, false
	}
	return v, true
}

func timeKey(p *models.Position) string {
	return p.MMSI + "|" + p.Timestamp.UTC().Format(time.RFC3339Nano)
}

// contentKey renders every field of a cleaned row, nil-aware, so that only
// rows identical across the full field set compare equal.
func contentKey(p *models.Position) string {
	parts := []string{
		timeKey(p),
		floatKey(p.Lat), floatKey(p.Lon),
		floatKey(p.SOG), floatKey(p.COG), floatKey(p.Heading),
		strKey(p.VesselName), strKey(p.IMO), strKey(p.CallSign),
		strKey(p.VesselType), strKey(p.Length), strKey(p.Width),
		strKey(p.Draft), strKey(p.Cargo), strKey(p.Destination),
		strKey(p.ETA), strKey(p.NavStatus),
	}
	return strings.Join(parts, "|")
}

func floatKey(v *float64) string {
	if v == nil {
		return "\x00"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func strKey(v *string) string {
	if v == nil {
		return "\x00"
	}
	return *v
}
