// Package backend is the typed client for the fleet-delivery REST backend.
// Authentication is a bearer token attached to every request; a 401 is
// surfaced like any other fetch error (the UI auth collaborator owns token
// clearing and redirects, not this service).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"fleetconsole/internal/models"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// Client calls the fleet backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *logrus.Logger
}

// New creates a backend client. baseURL has no trailing slash.
func New(baseURL, token string, timeout time.Duration, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Error("backend request failed")
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// ListDrivers fetches a page of driver records.
func (c *Client) ListDrivers(ctx context.Context, skip, limit int) (models.DriverList, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(skip))
	params.Set("limit", strconv.Itoa(limit))
	var list models.DriverList
	err := c.do(ctx, http.MethodGet, "/drivers", params, nil, &list)
	return list, err
}

// DriverSummary fetches the fleet-wide status counts.
func (c *Client) DriverSummary(ctx context.Context) (models.FleetSummary, error) {
	var summary models.FleetSummary
	err := c.do(ctx, http.MethodGet, "/drivers/stats/summary", nil, nil, &summary)
	return summary, err
}

// DriverPerformanceStats fetches per-driver performance metrics.
func (c *Client) DriverPerformanceStats(ctx context.Context, driverID string) (models.PerformanceStats, error) {
	var stats models.PerformanceStats
	err := c.do(ctx, http.MethodGet, "/drivers/"+driverID+"/performance-stats", nil, nil, &stats)
	return stats, err
}

// ListOrders fetches orders, optionally filtered by status, driver and zone.
func (c *Client) ListOrders(ctx context.Context, status, driverID, pickupZone string) ([]models.Order, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if driverID != "" {
		params.Set("driver_id", driverID)
	}
	if pickupZone != "" {
		params.Set("pickup_zone", pickupZone)
	}
	var out []models.Order
	err := c.do(ctx, http.MethodGet, "/orders", params, nil, &out)
	return out, err
}

// OrderStats fetches aggregate order statistics for an optional date range.
func (c *Client) OrderStats(ctx context.Context, startDate, endDate string) (models.OrderStats, error) {
	params := url.Values{}
	if startDate != "" {
		params.Set("start_date", startDate)
	}
	if endDate != "" {
		params.Set("end_date", endDate)
	}
	var stats models.OrderStats
	err := c.do(ctx, http.MethodGet, "/orders/stats", params, nil, &stats)
	return stats, err
}

// PickupOrder reports a pickup at the given coordinates.
func (c *Client) PickupOrder(ctx context.Context, orderID string, lat, lng float64) (models.Order, error) {
	body := map[string]float64{"pickup_latitude": lat, "pickup_longitude": lng}
	var order models.Order
	err := c.do(ctx, http.MethodPost, "/orders/"+orderID+"/pickup", nil, body, &order)
	return order, err
}

// DeliverOrder reports a delivery at the given coordinates.
func (c *Client) DeliverOrder(ctx context.Context, orderID string, lat, lng float64) (models.Order, error) {
	body := map[string]float64{"dropoff_latitude": lat, "dropoff_longitude": lng}
	var order models.Order
	err := c.do(ctx, http.MethodPost, "/orders/"+orderID+"/deliver", nil, body, &order)
	return order, err
}

// AssignOrder assigns an order to a specific driver.
func (c *Client) AssignOrder(ctx context.Context, orderID, driverID string) (models.Order, error) {
	body := map[string]string{"driver_id": driverID}
	var order models.Order
	err := c.do(ctx, http.MethodPost, "/orders/"+orderID+"/assign", nil, body, &order)
	return order, err
}

// AutoAssignOrder lets the backend choose a driver.
func (c *Client) AutoAssignOrder(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodPost, "/orders/"+orderID+"/auto-assign", nil, nil, &order)
	return order, err
}

// ListAlerts fetches safety alerts. acknowledged filters when non-nil.
func (c *Client) ListAlerts(ctx context.Context, driverID, alertType string, acknowledged *bool, skip, limit int) ([]models.Alert, error) {
	params := url.Values{}
	if driverID != "" {
		params.Set("driver_id", driverID)
	}
	if alertType != "" {
		params.Set("alert_type", alertType)
	}
	if acknowledged != nil {
		params.Set("acknowledged", strconv.FormatBool(*acknowledged))
	}
	params.Set("skip", strconv.Itoa(skip))
	params.Set("limit", strconv.Itoa(limit))
	var out []models.Alert
	err := c.do(ctx, http.MethodGet, "/safety/alerts", params, nil, &out)
	return out, err
}

// AcknowledgeAlert flips the acknowledged flag on an alert.
func (c *Client) AcknowledgeAlert(ctx context.Context, alertID string, acknowledged bool) (models.Alert, error) {
	body := map[string]bool{"acknowledged": acknowledged}
	var alert models.Alert
	err := c.do(ctx, http.MethodPatch, "/safety/alerts/"+alertID+"/acknowledge", nil, body, &alert)
	return alert, err
}
