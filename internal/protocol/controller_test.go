package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/agentwire/internal/errors"
)

type mockTransport struct {
	mu       sync.Mutex
	messages [][]byte
	msgChan  chan map[string]any
	errChan  chan error
}

func newMockTransport() *mockTransport {
	return &mockTransport{
		messages: make([][]byte, 0, 10),
		msgChan:  make(chan map[string]any, 10),
		errChan:  make(chan error, 1),
	}
}

func (m *mockTransport) ReadMessages(_ context.Context) (<-chan map[string]any, <-chan error) {
	return m.msgChan, m.errChan
}

func (m *mockTransport) SendMessage(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, data)

	return nil
}

func (m *mockTransport) getMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([][]byte, len(m.messages))
	copy(result, m.messages)

	return result
}

func (m *mockTransport) sendToController(msg map[string]any) {
	m.msgChan <- msg
}

// lastSentRequestID parses the most recent outbound message and returns
// its request_id.
func lastSentRequestID(t *testing.T, transport *mockTransport) string {
	t.Helper()

	msgs := transport.getMessages()
	require.NotEmpty(t, msgs)

	var req ControlRequest
	require.NoError(t, json.Unmarshal(msgs[len(msgs)-1], &req))

	return req.RequestID
}

func TestController_SendRequest_Success(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	done := make(chan struct{})

	var (
		resp    *ControlResponse
		sendErr error
	)

	go func() {
		defer close(done)

		resp, sendErr = controller.SendRequest(ctx, "interrupt", nil, 5*time.Second)
	}()

	// Wait for the request to hit the transport, then answer it.
	require.Eventually(t, func() bool {
		return len(transport.getMessages()) > 0
	}, time.Second, time.Millisecond)

	transport.sendToController(map[string]any{
		"type": "control_response",
		"response": map[string]any{
			"subtype":    "success",
			"request_id": lastSentRequestID(t, transport),
			"response":   map[string]any{"ok": true},
		},
	})

	<-done

	require.NoError(t, sendErr)
	assert.Equal(t, map[string]any{"ok": true}, resp.Payload())
}

func TestController_SendRequest_ErrorResponse(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	done := make(chan error, 1)

	go func() {
		_, err := controller.SendRequest(ctx, "set_model", map[string]any{"model": "bogus"}, 5*time.Second)
		done <- err
	}()

	require.Eventually(t, func() bool {
		return len(transport.getMessages()) > 0
	}, time.Second, time.Millisecond)

	transport.sendToController(map[string]any{
		"type": "control_response",
		"response": map[string]any{
			"subtype":    "error",
			"request_id": lastSentRequestID(t, transport),
			"error":      "unknown model",
		},
	})

	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model")
}

func TestController_SendRequest_Timeout(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	_, err := controller.SendRequest(ctx, "interrupt", nil, 10*time.Millisecond)

	require.ErrorIs(t, err, errors.ErrRequestTimeout)

	// The pending entry must be gone after the timeout.
	controller.pendingMu.RLock()
	assert.Empty(t, controller.pending)
	controller.pendingMu.RUnlock()
}

func TestController_SendRequest_CancelledOnStop(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	const numPending = 5

	errs := make(chan error, numPending)

	for range numPending {
		go func() {
			_, err := controller.SendRequest(ctx, "interrupt", nil, time.Minute)
			errs <- err
		}()
	}

	require.Eventually(t, func() bool {
		return len(transport.getMessages()) == numPending
	}, time.Second, time.Millisecond)

	controller.Stop()

	for range numPending {
		require.ErrorIs(t, <-errs, errors.ErrRequestCancelled)
	}
}

func TestController_SendRequest_TransportErrorSurfaces(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	done := make(chan error, 1)

	go func() {
		_, err := controller.SendRequest(ctx, "interrupt", nil, time.Minute)
		done <- err
	}()

	require.Eventually(t, func() bool {
		return len(transport.getMessages()) > 0
	}, time.Second, time.Millisecond)

	transport.errChan <- fmt.Errorf("broken pipe")

	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestController_ConcurrentRequests_NoCrossTalk(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	const numRequests = 10

	type result struct {
		idx  int
		resp *ControlResponse
		err  error
	}

	results := make(chan result, numRequests)

	for i := range numRequests {
		go func() {
			resp, err := controller.SendRequest(ctx, "echo", map[string]any{"idx": i}, 5*time.Second)
			results <- result{idx: i, resp: resp, err: err}
		}()
	}

	// Answer each outbound request with a payload echoing its idx.
	require.Eventually(t, func() bool {
		return len(transport.getMessages()) == numRequests
	}, time.Second, time.Millisecond)

	for _, raw := range transport.getMessages() {
		var req ControlRequest
		require.NoError(t, json.Unmarshal(raw, &req))

		transport.sendToController(map[string]any{
			"type": "control_response",
			"response": map[string]any{
				"subtype":    "success",
				"request_id": req.RequestID,
				"response":   map[string]any{"idx": req.Request["idx"]},
			},
		})
	}

	for range numRequests {
		r := <-results
		require.NoError(t, r.err)
		assert.Equal(t, float64(r.idx), r.resp.Payload()["idx"])
	}
}

func TestController_UnknownResponseDropped(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	// A response with no matching pending request must not panic or block.
	transport.sendToController(map[string]any{
		"type": "control_response",
		"response": map[string]any{
			"subtype":    "success",
			"request_id": "never-sent",
		},
	})

	// Regular messages still flow afterwards.
	transport.sendToController(map[string]any{"type": "assistant"})

	select {
	case msg := <-controller.Messages():
		assert.Equal(t, "assistant", msg["type"])
	case <-time.After(time.Second):
		t.Fatal("expected forwarded message")
	}
}

func TestController_InboundRequest_HandlerSuccess(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	controller.RegisterHandler("can_use_tool", func(_ context.Context, req *ControlRequest) (map[string]any, error) {
		assert.Equal(t, "Bash", req.Request["tool_name"])

		return map[string]any{"behavior": "allow"}, nil
	})

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	transport.sendToController(map[string]any{
		"type":       "control_request",
		"request_id": "req_1",
		"request": map[string]any{
			"subtype":   "can_use_tool",
			"tool_name": "Bash",
		},
	})

	require.Eventually(t, func() bool {
		return len(transport.getMessages()) > 0
	}, time.Second, time.Millisecond)

	var resp ControlResponse

	msgs := transport.getMessages()
	require.NoError(t, json.Unmarshal(msgs[0], &resp))
	assert.False(t, resp.IsError())
	assert.Equal(t, "req_1", resp.RequestID())
	assert.Equal(t, "allow", resp.Payload()["behavior"])
}

func TestController_InboundRequest_NoHandler(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	transport.sendToController(map[string]any{
		"type":       "control_request",
		"request_id": "req_9",
		"request":    map[string]any{"subtype": "unsupported_thing"},
	})

	require.Eventually(t, func() bool {
		return len(transport.getMessages()) > 0
	}, time.Second, time.Millisecond)

	var resp ControlResponse

	msgs := transport.getMessages()
	require.NoError(t, json.Unmarshal(msgs[0], &resp))
	assert.True(t, resp.IsError())
	assert.Contains(t, resp.ErrorMessage(), "unsupported_thing")
}

func TestController_InboundRequest_HandlerPanicBecomesError(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	controller.RegisterHandler("hook_callback", func(_ context.Context, _ *ControlRequest) (map[string]any, error) {
		panic("hook exploded")
	})

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	transport.sendToController(map[string]any{
		"type":       "control_request",
		"request_id": "req_2",
		"request":    map[string]any{"subtype": "hook_callback"},
	})

	require.Eventually(t, func() bool {
		return len(transport.getMessages()) > 0
	}, time.Second, time.Millisecond)

	var resp ControlResponse

	msgs := transport.getMessages()
	require.NoError(t, json.Unmarshal(msgs[0], &resp))
	assert.True(t, resp.IsError())
	assert.Contains(t, resp.ErrorMessage(), "hook exploded")
}

func TestController_CancelRequest_InFlight(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	started := make(chan struct{})

	controller.RegisterHandler("can_use_tool", func(ctx context.Context, _ *ControlRequest) (map[string]any, error) {
		close(started)
		<-ctx.Done()

		return nil, ctx.Err()
	})

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	transport.sendToController(map[string]any{
		"type":       "control_request",
		"request_id": "req_3",
		"request":    map[string]any{"subtype": "can_use_tool"},
	})

	<-started

	transport.sendToController(map[string]any{
		"type":       "control_cancel_request",
		"request_id": "req_3",
	})

	// Expect a cancel acknowledgment and an error response for req_3.
	require.Eventually(t, func() bool {
		return len(transport.getMessages()) >= 2
	}, time.Second, time.Millisecond)

	var sawAck, sawError bool

	for _, raw := range transport.getMessages() {
		var resp ControlResponse
		require.NoError(t, json.Unmarshal(raw, &resp))

		switch resp.Response["subtype"] {
		case "cancel_acknowledgment":
			sawAck = true

			assert.Equal(t, true, resp.Response["found"])
		case "error":
			sawError = true
		}
	}

	assert.True(t, sawAck)
	assert.True(t, sawError)
}

func TestController_CancelRequest_Unknown(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	transport.sendToController(map[string]any{
		"type":       "control_cancel_request",
		"request_id": "ghost",
	})

	require.Eventually(t, func() bool {
		return len(transport.getMessages()) > 0
	}, time.Second, time.Millisecond)

	var resp ControlResponse

	msgs := transport.getMessages()
	require.NoError(t, json.Unmarshal(msgs[0], &resp))
	assert.Equal(t, "cancel_acknowledgment", resp.Response["subtype"])
	assert.Equal(t, false, resp.Response["found"])
}

func TestController_SetFatalError_MultipleCalls(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	defer controller.Stop()

	controller.SetFatalError(fmt.Errorf("first error"))
	require.EqualError(t, controller.FatalError(), "first error")

	// Second call should not panic, and first error is preserved
	controller.SetFatalError(fmt.Errorf("second error"))
	require.EqualError(t, controller.FatalError(), "first error")
}

func TestController_Stop_MultipleCalls(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	controller.Stop()
	controller.Stop()
	controller.Stop()

	select {
	case <-controller.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestController_Stop_AbandonsBlockedHandler(t *testing.T) {
	transport := newMockTransport()
	controller := NewController(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, controller.Start(ctx))

	handlerStarted := make(chan struct{})
	release := make(chan struct{})

	// A handler that ignores its context entirely.
	controller.RegisterHandler("can_use_tool", func(_ context.Context, _ *ControlRequest) (map[string]any, error) {
		close(handlerStarted)
		<-release

		return map[string]any{}, nil
	})

	transport.sendToController(map[string]any{
		"type":       "control_request",
		"request_id": "req_blocked",
		"request":    map[string]any{"subtype": "can_use_tool"},
	})

	select {
	case <-handlerStarted:
	case <-time.After(time.Second):
		t.Fatal("handler never started")
	}

	stopped := make(chan struct{})

	go func() {
		controller.Stop()
		close(stopped)
	}()

	// Stop must return while the handler is still blocked.
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on an in-flight handler")
	}

	close(release)
}

func TestController_SendRequest_ResponseAfterTimeout_Race(t *testing.T) {
	// Attempts to trigger the race between SendRequest timing out and
	// handleControlResponse delivering the response.
	// Run with: go test -race -count=100
	for range 100 {
		transport := newMockTransport()
		controller := NewController(slog.Default(), transport)

		ctx := context.Background()
		require.NoError(t, controller.Start(ctx))

		timeout := 1 * time.Millisecond

		var wg sync.WaitGroup

		wg.Add(2)

		go func() {
			defer wg.Done()

			_, _ = controller.SendRequest(ctx, "test", map[string]any{}, timeout)
		}()

		go func() {
			defer wg.Done()

			time.Sleep(500 * time.Microsecond)

			transport.sendToController(map[string]any{
				"type": "control_response",
				"response": map[string]any{
					"request_id": findPendingRequestID(controller),
					"subtype":    "success",
				},
			})
		}()

		wg.Wait()
		controller.Stop()
	}
}

// findPendingRequestID extracts a pending request ID from the controller.
func findPendingRequestID(c *Controller) string {
	c.pendingMu.RLock()
	defer c.pendingMu.RUnlock()

	for id := range c.pending {
		return id
	}

	return "unknown-request-id"
}
