package net

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"TouchBoard/internal/applog"
	"TouchBoard/internal/config"
	"TouchBoard/internal/gesture"
	"TouchBoard/internal/state"
)

// Path is the websocket endpoint served by the relay.
const Path = "/touch"

// MaxPeers is the number of touch devices the relay serves at once. The
// relay is an input device for one board, not a collaboration channel.
const MaxPeers = 1

// Target receives the relayed input. Its methods are only called through
// the relay's dispatcher.
type Target interface {
	HandlePointerEvent(ev gesture.Event) bool
	SetMode(m state.Mode)
	SetColor(c state.Color)
	SetPan(on bool)
	Clear()
}

// Dispatcher runs fn on the goroutine that owns the Target.
type Dispatcher func(fn func())

// Relay accepts remote touch devices over websockets and forwards their
// messages to a Target.
type Relay struct {
	target   Target
	dispatch Dispatcher
	peers    *PeerManager
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewRelay creates a relay for target. A nil logger disables logging.
func NewRelay(target Target, dispatch Dispatcher, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = applog.Nop()
	}
	return &Relay{
		target:   target,
		dispatch: dispatch,
		peers:    NewPeerManager(MaxPeers, logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Touch devices on the LAN are not served from our origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: logger,
	}
}

// Peers exposes the connected devices.
func (r *Relay) Peers() *PeerManager { return r.peers }

// ServeHTTP upgrades the request and reads messages until the peer leaves.
// While a device is connected further devices get 409 Conflict.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.peers.Full() {
		r.log.Warn("touch device refused", "addr", req.RemoteAddr, "err", ErrBusy)
		http.Error(w, ErrBusy.Error(), http.StatusConflict)
		return
	}
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.log.Warn("websocket upgrade failed", "addr", req.RemoteAddr, "err", err)
		return
	}
	p := newPeer(conn)
	if err := r.peers.Add(p); err != nil {
		r.log.Warn("touch device refused", "addr", p.Addr, "err", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
		conn.Close()
		return
	}
	defer func() {
		r.peers.Remove(p)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				r.log.Warn("read failed", "peer", p.ID, "err", err)
			}
			return
		}
		if err := r.handle(data); err != nil {
			r.log.Warn("message skipped", "peer", p.ID, "err", err)
			if err := p.Send(Message{Type: TypeError, Error: err.Error()}); err != nil {
				return
			}
		}
	}
}

// handle decodes one frame and schedules it on the target. Parsing happens
// here so that bad input is reported to the sender.
func (r *Relay) handle(data []byte) error {
	m, err := DecodeMessage(data)
	if err != nil {
		return err
	}
	switch m.Type {
	case TypePointer:
		ev := *m.Event
		r.dispatch(func() { r.target.HandlePointerEvent(ev) })
	case TypeMode:
		mode, err := state.ParseMode(m.Mode)
		if err != nil {
			return err
		}
		r.dispatch(func() { r.target.SetMode(mode) })
	case TypeColor:
		c, err := config.ParseColor(m.Color)
		if err != nil {
			return err
		}
		r.dispatch(func() { r.target.SetColor(c) })
	case TypePan:
		on := *m.Pan
		r.dispatch(func() { r.target.SetPan(on) })
	case TypeClear:
		r.dispatch(r.target.Clear)
	}
	return nil
}

// Serve listens on port until ctx is cancelled.
func (r *Relay) Serve(ctx context.Context, port int) error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return fmt.Errorf("relay listen on port %d: %w", port, err)
	}
	return r.ServeListener(ctx, ln)
}

// ServeListener serves the relay on ln until ctx is cancelled.
func (r *Relay) ServeListener(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle(Path, r)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		r.peers.CloseAll()
	}()

	r.log.Info("touch relay listening", "addr", ln.Addr().String(), "path", Path)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("relay serve: %w", err)
	}
	return nil
}
