package websocket

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHub(log)
}

func registerClient(t *testing.T, h *Hub, userID, role string) *Client {
	t.Helper()
	c := NewClient(userID, role, nil, h)
	h.register <- c
	require.Eventually(t, func() bool { return h.IsUserConnected(userID) },
		time.Second, 5*time.Millisecond)
	return c
}

func TestBroadcastToUserReachesOnlyThatUser(t *testing.T) {
	h := newTestHub()
	go h.Run()

	target := registerClient(t, h, "DRV-1021", "driver")
	other := registerClient(t, h, "DRV-1045", "driver")

	h.BroadcastToUser("DRV-1021", "order_update", map[string]string{"order_id": "ORD-77"})

	select {
	case raw := <-target.send:
		var ev Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, "order_update", ev.Type)
	case <-time.After(time.Second):
		t.Fatal("targeted user received nothing")
	}

	select {
	case raw := <-other.send:
		t.Fatalf("unrelated user received %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastToRoleSkipsOtherRoles(t *testing.T) {
	h := newTestHub()
	go h.Run()

	manager := registerClient(t, h, "MGR-7", "manager")
	driver := registerClient(t, h, "DRV-1021", "driver")

	h.BroadcastToRole("manager", "safety_alert", nil)

	select {
	case raw := <-manager.send:
		var ev Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, "safety_alert", ev.Type)
	case <-time.After(time.Second):
		t.Fatal("manager received nothing")
	}

	select {
	case raw := <-driver.send:
		t.Fatalf("driver received %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDirectDeliveryDropsClientWithFullBuffer(t *testing.T) {
	h := newTestHub()
	go h.Run()

	c := registerClient(t, h, "DRV-1021", "driver")
	for i := 0; i < cap(c.send); i++ {
		c.send <- []byte("{}")
	}

	h.BroadcastToUser("DRV-1021", "order_update", nil)

	assert.Eventually(t, func() bool { return !h.IsUserConnected("DRV-1021") },
		time.Second, 5*time.Millisecond)
}
