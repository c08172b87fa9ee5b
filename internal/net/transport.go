package net

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Peer is one touch device connected to the relay.
type Peer struct {
	ID   string
	Addr string
	Conn *websocket.Conn

	writeMu sync.Mutex
}

func newPeer(conn *websocket.Conn) *Peer {
	return &Peer{
		ID:   uuid.NewString(),
		Addr: conn.RemoteAddr().String(),
		Conn: conn,
	}
}

// Send writes one message to the peer.
func (p *Peer) Send(m Message) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteJSON(m)
}

// ErrBusy is returned by Add when the manager is at its limit.
var ErrBusy = errors.New("touch relay busy")

// PeerManager tracks the connected touch devices by id.
type PeerManager struct {
	peers map[string]*Peer
	limit int
	mu    sync.RWMutex
	log   *slog.Logger
}

// NewPeerManager creates an empty manager accepting at most limit peers.
// A limit of zero or less means no limit.
func NewPeerManager(limit int, logger *slog.Logger) *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
		limit: limit,
		log:   logger,
	}
}

// Add registers a peer, or returns ErrBusy when the manager is full.
func (pm *PeerManager) Add(p *Peer) error {
	pm.mu.Lock()
	if pm.full() {
		pm.mu.Unlock()
		return ErrBusy
	}
	pm.peers[p.ID] = p
	pm.mu.Unlock()
	pm.log.Info("touch device connected", "peer", p.ID, "addr", p.Addr)
	return nil
}

// Full reports whether another peer would be refused.
func (pm *PeerManager) Full() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.full()
}

func (pm *PeerManager) full() bool {
	return pm.limit > 0 && len(pm.peers) >= pm.limit
}

// Remove forgets a peer.
func (pm *PeerManager) Remove(p *Peer) {
	pm.mu.Lock()
	_, ok := pm.peers[p.ID]
	delete(pm.peers, p.ID)
	pm.mu.Unlock()
	if ok {
		pm.log.Info("touch device disconnected", "peer", p.ID, "addr", p.Addr)
	}
}

// Count reports how many peers are connected.
func (pm *PeerManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// CloseAll drops every connection.
func (pm *PeerManager) CloseAll() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for id, p := range pm.peers {
		p.Conn.Close()
		delete(pm.peers, id)
	}
}
