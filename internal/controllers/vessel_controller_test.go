package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestParseISOQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-01T12:00:00Z", "2024-03-01T12:00:00Z"},
		{"2024-03-01T12:00:00+02:00", "2024-03-01T10:00:00Z"},
		{"2024-03-01T12:00:00", "2024-03-01T12:00:00Z"}, // zone-less treated as UTC
		{"2024-03-01T12:00:00.123456Z", "2024-03-01T12:00:00.123456Z"},
		{"2024-03-01T12:00:00.5", "2024-03-01T12:00:00.5Z"}, // fractional seconds, no zone
	}
	for _, tc := range cases {
		got, err := parseISOQuery(tc.in)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.in, err)
			continue
		}
		if rendered := got.UTC().Format(time.RFC3339Nano); rendered != tc.want {
			t.Errorf("%s: got %s, want %s", tc.in, rendered, tc.want)
		}
	}

	if got, err := parseISOQuery(""); err != nil || got != nil {
		t.Errorf("empty string: got (%v, %v), want (nil, nil)", got, err)
	}

	for _, bad := range []string{"yesterday", "2024-13-01T00:00:00Z", "2024-03-01 12:00:00"} {
		if _, err := parseISOQuery(bad); err == nil {
			t.Errorf("%s: expected error", bad)
		}
	}
}

func anomalyTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/vessels/:mmsi/anomalies", GetVesselAnomalies)
	return r
}

// Parameter validation happens before any storage access, so these paths
// need no database.
func TestGetVesselAnomalies_ParamValidation(t *testing.T) {
	r := anomalyTestRouter()

	cases := []struct {
		path string
		want int
	}{
		{"/vessels/12345/anomalies", http.StatusUnprocessableEntity},
		{"/vessels/21100000a/anomalies", http.StatusUnprocessableEntity},
		{"/vessels/211000000/anomalies?limit=0", http.StatusBadRequest},
		{"/vessels/211000000/anomalies?limit=501", http.StatusBadRequest},
		{"/vessels/211000000/anomalies?limit=abc", http.StatusBadRequest},
		{"/vessels/211000000/anomalies?since=notatime", http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s: status %d, want %d", tc.path, w.Code, tc.want)
		}
	}
}
