package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetconsole/internal/backend"
	"fleetconsole/internal/models"
)

func TestListDrivers_SendsTokenAndPagination(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(models.DriverList{
			Total:   2,
			Drivers: []models.Driver{{DriverID: "DRV-1"}, {DriverID: "DRV-2"}},
		})
	}))
	defer srv.Close()

	c := backend.New(srv.URL, "secret-token", 2*time.Second, nil)
	list, err := c.ListDrivers(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.Drivers, 2)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Contains(t, gotQuery, "skip=0")
	assert.Contains(t, gotQuery, "limit=20")
}

func TestAcknowledgeAlert_PatchesBody(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(models.Alert{AlertID: "ALT-1", Acknowledged: true})
	}))
	defer srv.Close()

	c := backend.New(srv.URL, "tok", 2*time.Second, nil)
	alert, err := c.AcknowledgeAlert(context.Background(), "ALT-1", true)
	require.NoError(t, err)
	assert.True(t, alert.Acknowledged)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/safety/alerts/ALT-1/acknowledge", gotPath)
	assert.Equal(t, map[string]bool{"acknowledged": true}, gotBody)
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := backend.New(srv.URL, "expired", 2*time.Second, nil)
	_, err := c.DriverSummary(context.Background())
	require.Error(t, err)

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestListAlerts_OptionalFilters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]models.Alert{})
	}))
	defer srv.Close()

	c := backend.New(srv.URL, "tok", 2*time.Second, nil)
	acked := false
	_, err := c.ListAlerts(context.Background(), "DRV-1", "fatigue", &acked, 0, 100)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "driver_id=DRV-1")
	assert.Contains(t, gotQuery, "alert_type=fatigue")
	assert.Contains(t, gotQuery, "acknowledged=false")

	_, err = c.ListAlerts(context.Background(), "", "", nil, 0, 100)
	require.NoError(t, err)
	assert.NotContains(t, gotQuery, "acknowledged")
	assert.NotContains(t, gotQuery, "driver_id")
}

func TestContextCancellationStopsRequest(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := backend.New(srv.URL, "tok", 10*time.Second, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.OrderStats(ctx, "", "")
	require.Error(t, err)
}
