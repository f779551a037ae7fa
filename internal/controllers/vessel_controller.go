package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"deepdarshak/internal/config"
	"deepdarshak/internal/models"
	"deepdarshak/internal/pipeline"
)

// queryHeadroom is how many times max_points we fetch before sanitizing,
// so outlier filtering has rows to spare ahead of downsampling.
const queryHeadroom = 5

// VesselSummary is the latest descriptive record for one vessel.
type VesselSummary struct {
	MMSI       string     `json:"mmsi"`
	VesselName *string    `json:"vessel_name"`
	IMO        *string    `json:"imo"`
	CallSign   *string    `json:"call_sign"`
	VesselType *string    `json:"vessel_type"`
	Length     *string    `json:"length"`
	Width      *string    `json:"width"`
	Draft      *string    `json:"draft"`
	Cargo      *string    `json:"cargo"`
	LastSeen   *time.Time `json:"last_seen"`
}

// GetVesselSummary returns the most recent descriptive record for a vessel.
func GetVesselSummary(c *gin.Context) {
	mmsi, ok := requireMMSI(c)
	if !ok {
		return
	}

	var p models.Position
	err := config.DB.Where("mmsi = ?", mmsi).Order("timestamp DESC").First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vessel not found"})
		} else {
			logrus.WithError(err).Error("GetVesselSummary: query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, VesselSummary{
		MMSI:       p.MMSI,
		VesselName: p.VesselName,
		IMO:        p.IMO,
		CallSign:   p.CallSign,
		VesselType: p.VesselType,
		Length:     p.Length,
		Width:      p.Width,
		Draft:      p.Draft,
		Cargo:      p.Cargo,
		LastSeen:   p.Timestamp,
	})
}

// GetLatestPosition returns the most recent cleaned position for a vessel.
func GetLatestPosition(c *gin.Context) {
	mmsi, ok := requireMMSI(c)
	if !ok {
		return
	}

	var p models.Position
	err := config.DB.Where("mmsi = ?", mmsi).Order("timestamp DESC").First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Position not found"})
		} else {
			logrus.WithError(err).Error("GetLatestPosition: query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"position": p})
}

// GetPositionsGeoJSON returns a vessel's sanitized trajectory as a GeoJSON
// FeatureCollection of point features.
func GetPositionsGeoJSON(c *gin.Context) {
	mmsi, ok := requireMMSI(c)
	if !ok {
		return
	}
	start, end, maxPoints, ok := requireWindow(c)
	if !ok {
		return
	}

	track, err := queryTrack(mmsi, start, end, maxPoints*queryHeadroom)
	if err != nil {
		logrus.WithError(err).Error("GetPositionsGeoJSON: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sanitized, err := pipeline.Sanitize(track, pipeline.DefaultMaxSpeedKPH, maxPoints)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pipeline.EncodeFeatures(sanitized))
}

// GetTrackLine returns a vessel's sanitized trajectory as one LineString
// feature for path rendering. A track too short to form a line is an
// explicit miss, not an empty success.
func GetTrackLine(c *gin.Context) {
	mmsi, ok := requireMMSI(c)
	if !ok {
		return
	}
	start, end, maxPoints, ok := requireWindow(c)
	if !ok {
		return
	}

	track, err := queryTrack(mmsi, start, end, maxPoints*queryHeadroom)
	if err != nil {
		logrus.WithError(err).Error("GetTrackLine: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sanitized, err := pipeline.Sanitize(track, pipeline.DefaultMaxSpeedKPH, maxPoints)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line, err := pipeline.TrackLine(sanitized)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not enough positions to build a track"})
		return
	}

	c.JSON(http.StatusOK, line)
}

// VesselAnomaly is one flagged position report.
type VesselAnomaly struct {
	EventTime   *time.Time `json:"event_time"`
	AnomalyType string     `json:"anomaly_type"`
	Lat         *float64   `json:"lat"`
	Lon         *float64   `json:"lon"`
}

// GetVesselAnomalies lists a vessel's flagged position reports, most recent
// first, optionally bounded below by 'since'.
func GetVesselAnomalies(c *gin.Context) {
	mmsi, ok := requireMMSI(c)
	if !ok {
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		limit = v
	}

	since, err := parseISOQuery(c.Query("since"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'since' datetime format. Expect ISO8601 UTC string."})
		return
	}

	q := config.DB.Where("mmsi = ? AND flags <> 0", mmsi)
	if since != nil {
		q = q.Where("timestamp >= ?", *since)
	}

	var flagged []models.Position
	if err := q.Order("timestamp DESC").Limit(limit).Find(&flagged).Error; err != nil {
		logrus.WithError(err).Error("GetVesselAnomalies: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]VesselAnomaly, 0, len(flagged))
	for i := range flagged {
		p := &flagged[i]
		items = append(items, VesselAnomaly{
			EventTime:   p.Timestamp,
			AnomalyType: p.Flags.String(),
			Lat:         p.Lat,
			Lon:         p.Lon,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"mmsi":  mmsi,
		"items": items,
		"count": len(items),
	})
}

// queryTrack fetches one vessel's positions ordered by ascending timestamp,
// optionally bounded by a time window.
func queryTrack(mmsi string, start, end *time.Time, limit int) ([]models.Position, error) {
	q := config.DB.Where("mmsi = ?", mmsi)
	if start != nil {
		q = q.Where("timestamp >= ?", *start)
	}
	if end != nil {
		q = q.Where("timestamp <= ?", *end)
	}

	var track []models.Position
	err := q.Order("timestamp ASC").Limit(limit).Find(&track).Error
	return track, err
}

// requireMMSI validates the path parameter: exactly 9 ASCII digits.
func requireMMSI(c *gin.Context) (string, bool) {
	mmsi := c.Param("mmsi")
	if len(mmsi) != 9 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "mmsi must be a 9-digit identifier"})
		return "", false
	}
	for _, ch := range mmsi {
		if ch < '0' || ch > '9' {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "mmsi must be a 9-digit identifier"})
			return "", false
		}
	}
	return mmsi, true
}

// requireWindow parses optional start/end ISO8601 bounds and max_points.
func requireWindow(c *gin.Context) (start, end *time.Time, maxPoints int, ok bool) {
	start, err := parseISOQuery(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'start' datetime. Expect ISO8601 UTC string."})
		return nil, nil, 0, false
	}
	end, err = parseISOQuery(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'end' datetime. Expect ISO8601 UTC string."})
		return nil, nil, 0, false
	}

	maxPoints = 2000
	if raw := c.Query("max_points"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 10000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_points must be between 1 and 10000"})
			return nil, nil, 0, false
		}
		maxPoints = v
	}
	return start, end, maxPoints, true
}

// parseISOQuery accepts RFC3339 or a zone-less ISO8601 string, which is
// treated as UTC.
func parseISOQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
