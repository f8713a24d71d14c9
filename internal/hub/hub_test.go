package hub

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"physmap/internal/service"
)

func TestEncode(t *testing.T) {
	msg, err := encode(service.Event{Type: service.EventNotice, Payload: map[string]string{"message": "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "event: notice\ndata: {\"type\":\"notice\",\"payload\":{\"message\":\"hi\"}}\n\n", string(msg))
}

func TestHubStreamsBusEvents(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	h := New(zaptest.NewLogger(t))
	go h.Run(done)

	bus := service.NewEventBus()
	h.Forward(bus, done)

	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	bus.Publish(service.Event{Type: service.EventViewChanged, Payload: map[string]any{"revision": 4}})

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed early")
			if strings.HasPrefix(line, "event:") || strings.HasPrefix(line, "data:") {
				got = append(got, line)
			}
		case <-timeout:
			t.Fatalf("no event received, got %v", got)
		}
	}

	assert.Equal(t, "event: view_changed", got[0])
	assert.Contains(t, got[1], `"revision":4`)

	cancel()
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
