package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	orig := TimeNow
	TimeNow = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }
	defer func() { TimeNow = orig }()

	rec := httptest.NewRecorder()
	NewHealthHandler().Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"success":true,"message":"API is running","timestamp":"2024-05-01T12:30:00Z"}`,
		rec.Body.String())
}
