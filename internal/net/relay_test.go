package net

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TouchBoard/internal/applog"
	"TouchBoard/internal/gesture"
	"TouchBoard/internal/state"
)

type fakeTarget struct {
	events  []gesture.Event
	modes   []state.Mode
	colors  []state.Color
	pans    []bool
	cleared int
}

func (f *fakeTarget) HandlePointerEvent(ev gesture.Event) bool {
	f.events = append(f.events, ev)
	return true
}
func (f *fakeTarget) SetMode(m state.Mode)   { f.modes = append(f.modes, m) }
func (f *fakeTarget) SetColor(c state.Color) { f.colors = append(f.colors, c) }
func (f *fakeTarget) SetPan(on bool)         { f.pans = append(f.pans, on) }
func (f *fakeTarget) Clear()                 { f.cleared++ }

// queue stands in for the UI thread: the test goroutine runs what the
// relay dispatches.
type queue chan func()

func (q queue) dispatch(fn func()) { q <- fn }

func (q queue) run(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case fn := <-q:
			fn()
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for dispatch %d of %d", i+1, n)
		}
	}
}

func newTestRelay(t *testing.T) (*fakeTarget, queue, string) {
	t.Helper()
	target := &fakeTarget{}
	q := make(queue, 32)
	srv := httptest.NewServer(NewRelay(target, q.dispatch, nil))
	t.Cleanup(srv.Close)
	return target, q, strings.TrimPrefix(srv.URL, "http://")
}

func dial(t *testing.T, addr string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+Path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRelayDispatchesMessages(t *testing.T) {
	target, q, addr := newTestRelay(t)
	conn := dial(t, addr)

	frames := []string{
		`{"type":"mode","mode":"line"}`,
		`{"type":"color","color":"red"}`,
		`{"type":"pointer","event":{"action":"down","pointers":[{"id":0,"x":1,"y":2}]}}`,
		`{"type":"pan","pan":true}`,
		`{"type":"clear"}`,
	}
	for _, f := range frames {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f)))
	}
	q.run(t, len(frames))

	assert.Equal(t, []state.Mode{state.ModeLine}, target.modes)
	assert.Equal(t, []state.Color{{R: 0xff, A: 0xff}}, target.colors)
	require.Len(t, target.events, 1)
	assert.Equal(t, gesture.ActionDown, target.events[0].Action)
	assert.Equal(t, []gesture.Pointer{{ID: 0, X: 1, Y: 2}}, target.events[0].Pointers)
	assert.Equal(t, []bool{true}, target.pans)
	assert.Equal(t, 1, target.cleared)
}

func TestRelayRepliesToBadMessages(t *testing.T) {
	target, q, addr := newTestRelay(t)
	conn := dial(t, addr)

	bad := []string{
		`not json`,
		`{"type":"wave"}`,
		`{"type":"mode","mode":"spiral"}`,
		`{"type":"color","color":"no-such-colour"}`,
		`{"type":"pointer"}`,
	}
	for _, f := range bad {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f)))
		var reply Message
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		require.NoError(t, conn.ReadJSON(&reply), f)
		assert.Equal(t, TypeError, reply.Type, f)
		assert.NotEmpty(t, reply.Error, f)
	}

	// The connection survives and keeps relaying.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"clear"}`)))
	q.run(t, 1)
	assert.Equal(t, 1, target.cleared)
	assert.Empty(t, target.modes)
	assert.Empty(t, target.colors)
}

func TestRelayTracksPeers(t *testing.T) {
	target := &fakeTarget{}
	q := make(queue, 1)
	r := NewRelay(target, q.dispatch, nil)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dial(t, strings.TrimPrefix(srv.URL, "http://"))
	assert.Eventually(t, func() bool { return r.Peers().Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	assert.Eventually(t, func() bool { return r.Peers().Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestFeedSendsValidLines(t *testing.T) {
	target, q, addr := newTestRelay(t)

	input := strings.Join([]string{
		`{"type":"mode","mode":"box"}`,
		``,
		`garbage`,
		`{"type":"pointer","event":{"action":"down","pointers":[{"id":0,"x":5,"y":5}]}}`,
		`{"type":"pointer","event":{"action":"up","pointers":[{"id":0,"x":9,"y":9}]}}`,
	}, "\n")

	sent, err := Feed(context.Background(), addr, strings.NewReader(input), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, sent)

	q.run(t, 3)
	assert.Equal(t, []state.Mode{state.ModeBox}, target.modes)
	require.Len(t, target.events, 2)
	assert.Equal(t, gesture.ActionUp, target.events[1].Action)
}

func TestFeedDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = Feed(context.Background(), addr, strings.NewReader(""), nil)
	assert.Error(t, err)
}

func TestServeListenerStopsOnCancel(t *testing.T) {
	target := &fakeTarget{}
	q := make(queue, 4)
	r := NewRelay(target, q.dispatch, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.ServeListener(ctx, ln) }()

	sent, err := Feed(context.Background(), ln.Addr().String(), strings.NewReader(`{"type":"clear"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	q.run(t, 1)
	assert.Equal(t, 1, target.cleared)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("relay did not stop")
	}
}

func TestShareLinkRoundTrip(t *testing.T) {
	link := ShareLink("192.168.1.20", 8888)
	assert.Equal(t, "touchboard://192.168.1.20:8888", link)
	assert.True(t, IsLink(link))

	addr, err := ParseLink(link + "/")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20:8888", addr)

	_, err = ParseLink("http://example.com")
	assert.Error(t, err)
	_, err = ParseLink("touchboard://nohost")
	assert.Error(t, err)
	assert.NotEmpty(t, OutgoingIP())
}

func TestDecodeMessage(t *testing.T) {
	m, err := DecodeMessage([]byte(`{"type":"pan","pan":false}`))
	require.NoError(t, err)
	require.NotNil(t, m.Pan)
	assert.False(t, *m.Pan)

	_, err = DecodeMessage([]byte(`{"type":"pan"}`))
	assert.Error(t, err)
	_, err = DecodeMessage([]byte(`{"type":"color"}`))
	assert.Error(t, err)
	_, err = DecodeMessage([]byte(`{"type":"mode"}`))
	assert.Error(t, err)
}

func TestRelayRejectsOutOfRangePointerIDs(t *testing.T) {
	target, q, addr := newTestRelay(t)
	conn := dial(t, addr)

	for _, id := range []int{20000000, state.MaxPointers, -1} {
		frame := fmt.Sprintf(`{"type":"pointer","event":{"action":"down","pointers":[{"id":%d,"x":1,"y":1}]}}`, id)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
		var reply Message
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		require.NoError(t, conn.ReadJSON(&reply))
		assert.Equal(t, TypeError, reply.Type, id)
		assert.Contains(t, reply.Error, "out of range")
	}

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"clear"}`)))
	q.run(t, 1)
	assert.Empty(t, target.events)
	assert.Equal(t, 1, target.cleared)
}

func TestRelayRefusesSecondDevice(t *testing.T) {
	target := &fakeTarget{}
	q := make(queue, 1)
	r := NewRelay(target, q.dispatch, nil)
	srv := httptest.NewServer(r)
	defer srv.Close()
	addr := strings.TrimPrefix(srv.URL, "http://")

	dial(t, addr)
	require.Eventually(t, func() bool { return r.Peers().Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	_, resp, err := websocket.DefaultDialer.Dial("ws://"+addr+Path, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 1, r.Peers().Count())
}

func TestPeerManagerLimit(t *testing.T) {
	pm := NewPeerManager(1, applog.Nop())
	a := &Peer{ID: "a"}
	b := &Peer{ID: "b"}

	require.NoError(t, pm.Add(a))
	assert.True(t, pm.Full())
	assert.ErrorIs(t, pm.Add(b), ErrBusy)

	pm.Remove(a)
	assert.False(t, pm.Full())
	assert.NoError(t, pm.Add(b))
}

func TestFeedLogsRepliesToLastLine(t *testing.T) {
	_, _, addr := newTestRelay(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sent, err := Feed(context.Background(), addr, strings.NewReader(`{"type":"mode","mode":"spiral"}`), logger)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	out := buf.String()
	assert.Contains(t, out, "relay rejected message")
	assert.Contains(t, out, "spiral")
	assert.NotContains(t, out, "did not acknowledge close")
}
