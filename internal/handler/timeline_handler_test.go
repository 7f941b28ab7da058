package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetTimelineRejectsBadTechnicianID(t *testing.T) {
	h := NewTimelineHandler(nil)

	r := gin.New()
	r.GET("/technicians/:id/timeline", h.GetTimeline)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/technicians/abc/timeline?date=2025-03-10", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetTimelineRejectsBadDate(t *testing.T) {
	h := NewTimelineHandler(nil)

	r := gin.New()
	r.GET("/technicians/:id/timeline", h.GetTimeline)

	for _, date := range []string{"", "03/10/2025", "2025-3-10", "20250310"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/technicians/1/timeline?date="+date, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("date %q: status = %d, want 400", date, w.Code)
		}
	}
}

func TestReverseGeocodeValidatesCoordinates(t *testing.T) {
	h := NewGeocodingHandler(nil)

	r := gin.New()
	r.GET("/geocode/reverse", h.ReverseGeocode)

	cases := []struct {
		name  string
		query string
	}{
		{"missing lat", "lon=-74.0"},
		{"missing lon", "lat=40.7"},
		{"non-numeric", "lat=abc&lon=-74.0"},
		{"lat out of range", "lat=91&lon=0"},
		{"lon out of range", "lat=0&lon=181"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/geocode/reverse?"+tc.query, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, w.Code)
		}
	}
}
