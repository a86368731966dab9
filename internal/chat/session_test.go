package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetconsole/internal/chat"
)

func TestOpen_SeedsScriptWithSubstitutions(t *testing.T) {
	r := chat.NewRegistry()
	s := r.Open("DRV-1021", "Ahmed Khan", "Zone C2")

	require.NotEmpty(t, s.Messages)
	assert.Contains(t, s.Messages[0].Text, "Ahmed Khan")
	assert.Contains(t, s.Messages[0].Text, "Zone C2")
	assert.Equal(t, "Dispatch", s.Messages[0].Sender)
}

func TestOpen_UnknownDriverGetsGenericTemplate(t *testing.T) {
	r := chat.NewRegistry()
	s := r.Open("DRV-9999", "New Driver", "Zone A1")

	require.Len(t, s.Messages, 1)
	assert.Contains(t, s.Messages[0].Text, "safety alert")
	assert.Contains(t, s.Messages[0].Text, "New Driver")
}

func TestOpen_SwitchingDriversResetsState(t *testing.T) {
	r := chat.NewRegistry()
	first := r.Open("DRV-1021", "Ahmed Khan", "Zone C2")
	_, ok := r.Append("DRV-1021", "Dispatch", "Checking in again.")
	require.True(t, ok)
	require.Greater(t, len(first.Messages), 1)

	second := r.Open("DRV-1045", "Omar Hassan", "Zone B1")
	for _, msg := range second.Messages {
		assert.NotContains(t, msg.Text, "Ahmed Khan", "no cross-driver leakage")
		assert.NotContains(t, msg.Text, "Checking in again.")
	}
}

func TestOpen_SameDriverKeepsSession(t *testing.T) {
	r := chat.NewRegistry()
	r.Open("DRV-1021", "Ahmed Khan", "Zone C2")
	r.Append("DRV-1021", "Driver", "Pulled over now.")

	again := r.Open("DRV-1021", "Ahmed Khan", "Zone C2")
	found := false
	for _, msg := range again.Messages {
		if msg.Text == "Pulled over now." {
			found = true
		}
	}
	assert.True(t, found, "reopening the same driver keeps the conversation")
}

func TestAppend_RequiresOpenSessionForDriver(t *testing.T) {
	r := chat.NewRegistry()
	_, ok := r.Append("DRV-1", "Dispatch", "hello")
	assert.False(t, ok)

	r.Open("DRV-1", "A", "")
	_, ok = r.Append("DRV-2", "Dispatch", "hello")
	assert.False(t, ok)
}

func TestPromptFor_FallsBackGracefully(t *testing.T) {
	p := chat.PromptFor("DRV-1045", "Omar Hassan", "Zone B1")
	assert.Contains(t, p.Message, "impact in Zone B1")

	p = chat.PromptFor("DRV-404", "", "")
	assert.Contains(t, p.Message, "Driver")
	assert.NotEmpty(t, p.Message)
}
