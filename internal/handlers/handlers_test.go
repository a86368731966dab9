package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetconsole/internal/alerts"
	"fleetconsole/internal/chat"
	"fleetconsole/internal/handlers"
	"fleetconsole/internal/middleware"
	"fleetconsole/internal/models"
	"fleetconsole/internal/store"
	"fleetconsole/internal/views"
)

type fakeBackend struct {
	drivers  models.DriverList
	orders   []models.Order
	alerts   []models.Alert
	ackCalls int
}

func (f *fakeBackend) ListDrivers(ctx context.Context, skip, limit int) (models.DriverList, error) {
	return f.drivers, nil
}

func (f *fakeBackend) DriverSummary(ctx context.Context) (models.FleetSummary, error) {
	return models.FleetSummary{}, nil
}

func (f *fakeBackend) DriverPerformanceStats(ctx context.Context, driverID string) (models.PerformanceStats, error) {
	return models.PerformanceStats{}, nil
}

func (f *fakeBackend) ListOrders(ctx context.Context, status, driverID, pickupZone string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if status != "" && o.Status != status {
			continue
		}
		if driverID != "" && o.DriverID != driverID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeBackend) OrderStats(ctx context.Context, startDate, endDate string) (models.OrderStats, error) {
	return models.OrderStats{}, nil
}

func (f *fakeBackend) ListAlerts(ctx context.Context, driverID, alertType string, acknowledged *bool, skip, limit int) ([]models.Alert, error) {
	return f.alerts, nil
}

func (f *fakeBackend) AcknowledgeAlert(ctx context.Context, alertID string, acknowledged bool) (models.Alert, error) {
	f.ackCalls++
	return models.Alert{AlertID: alertID, Acknowledged: acknowledged}, nil
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateAlerts() {}

func newRouter(t *testing.T, f *fakeBackend) (chi.Router, *views.Views) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	cache := store.New(log)
	lifecycle := alerts.NewManager(f, noopInvalidator{}, log)
	v := views.New(f, cache, lifecycle, log)
	sessions := chat.NewRegistry()

	r := chi.NewRouter()
	r.Get("/api/drivers", handlers.ListDrivers(v))
	r.Get("/api/alerts", handlers.ListAlerts(v))
	r.Post("/api/alerts/{id}/acknowledge", handlers.AcknowledgeAlert(v))
	r.Post("/api/alerts/{id}/resolve", handlers.ResolveAlert(v))
	r.Get("/api/chat/{driverID}", handlers.OpenChat(v, sessions))
	r.Post("/api/chat/{driverID}", handlers.PostChatMessage(sessions))
	r.Get("/api/driver/orders", handlers.GetDriverOrders(v))
	r.Get("/api/orders", handlers.GetOrders(v))
	return r, v
}

func TestListDriversFilters(t *testing.T) {
	f := &fakeBackend{drivers: models.DriverList{Total: 2, Drivers: []models.Driver{
		{DriverID: "DRV-1021", Name: "Marcus Webb", Status: "ON_DELIVERY"},
		{DriverID: "DRV-1045", Name: "Lena Ortiz", Status: "AVAILABLE"},
	}}}
	r, _ := newRouter(t, f)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/drivers?status=BUSY", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page views.DriverPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Drivers, 1)
	assert.Equal(t, "DRV-1021", page.Drivers[0].DriverID)
	assert.Equal(t, models.DriverBusy, page.Drivers[0].DisplayStatus)
}

func TestAcknowledgeAlertReturnsPrompt(t *testing.T) {
	f := &fakeBackend{
		drivers: models.DriverList{Drivers: []models.Driver{
			{DriverID: "DRV-1021", Name: "Marcus Webb", CurrentZone: "Zone C", Status: "BUSY"},
		}},
		alerts: []models.Alert{
			{AlertID: "AL-1", DriverID: "DRV-1021", AlertType: "FATIGUE", Severity: 4, Timestamp: time.Now()},
		},
	}
	r, v := newRouter(t, f)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/api/alerts/AL-1/acknowledge", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		State  models.AlertState `json:"state"`
		Prompt chat.Prompt       `json:"prompt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.AlertAcknowledged, body.State)
	assert.Equal(t, "DRV-1021", body.Prompt.DriverID)
	assert.Contains(t, body.Prompt.Message, "Marcus", "prompt is personalized")
	assert.Equal(t, 1, f.ackCalls)

	state := v.Lifecycle().State(f.alerts[0])
	assert.Equal(t, models.AlertAcknowledged, state)
}

func TestAcknowledgeUnknownAlert(t *testing.T) {
	r, _ := newRouter(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/api/alerts/nope/acknowledge", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatFlow(t *testing.T) {
	f := &fakeBackend{drivers: models.DriverList{Drivers: []models.Driver{
		{DriverID: "DRV-1021", Name: "Marcus Webb", CurrentZone: "Zone C", Status: "BUSY"},
	}}}
	r, _ := newRouter(t, f)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/chat/DRV-1021", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/chat/DRV-1021", strings.NewReader(`{"text":"Please take a break"}`))
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Appending to a driver without an open session conflicts.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/chat/DRV-9999", strings.NewReader(`{"text":"hello"}`))
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOrdersBoardFiltersUpstream(t *testing.T) {
	f := &fakeBackend{orders: []models.Order{
		{OrderID: "ORD-200", Status: models.OrderInTransit, DriverID: "DRV-1021"},
		{OrderID: "ORD-201", Status: models.OrderPending},
	}}
	r, _ := newRouter(t, f)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/orders?driver_id=DRV-1021", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page views.OrderPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Orders, 1)
	assert.Equal(t, "ORD-200", page.Orders[0].OrderID)
	assert.Equal(t, "In Transit", page.Orders[0].BadgeLabel)
}

func TestListAlertsRejectsUnknownTab(t *testing.T) {
	r, _ := newRouter(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/alerts?tab=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Known tabs still serve.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/alerts?tab=acknowledged", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDriverOrdersRequiresAuth(t *testing.T) {
	r, _ := newRouter(t, &fakeBackend{})

	// No claims in context.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/driver/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// With claims injected the handler serves the (empty) queue.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/driver/orders", nil)
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, middleware.UserClaims{
		UserID: "DRV-1021", Role: "driver",
	})
	r.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
}
