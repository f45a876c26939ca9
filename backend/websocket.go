// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backend

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4 * 1024

	// A hub with no clients is removed after this long.
	hubIdleTimeout = 5 * time.Minute

	// feedAll is the hub key for clients following every simulation.
	feedAll = "*"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// Message types for the play-by-play feed.
const (
	MsgTypeJoin       = "JOIN"
	MsgTypeAck        = "ACK"
	MsgTypeEvent      = "EVENT"
	MsgTypeSyncUpdate = "SYNC_UPDATE"
	MsgTypeError      = "ERROR"
	MsgTypePing       = "PING"
	MsgTypePong       = "PONG"
)

// Message is a feed message in either direction.
type Message struct {
	Type    string      `json:"type"`
	SimId   string      `json:"simId,omitempty"`
	LastSeq int         `json:"lastSeq,omitempty"`
	Event   *PlayEvent  `json:"event,omitempty"`
	Events  []PlayEvent `json:"events,omitempty"`
	Error   string      `json:"error,omitempty"`
}

const (
	reqTypeJoin      = "JOIN"
	reqTypeBroadcast = "BROADCAST"
	reqTypeCount     = "COUNT"
)

type hubRequest struct {
	Type    string
	Client  *wsClient
	Message Message
	Reply   chan int
}

// Hub fans play events out to the clients following one simulation, or
// every simulation for the feedAll hub.
type Hub struct {
	simId string

	clients    map[*wsClient]bool
	requests   chan hubRequest
	register   chan *wsClient
	unregister chan *wsClient

	// Closed when run returns.
	done chan struct{}

	store *SimStore
	hm    *FeedHub
}

func newHub(simId string, store *SimStore, hm *FeedHub) *Hub {
	return &Hub{
		simId:      simId,
		clients:    make(map[*wsClient]bool),
		requests:   make(chan hubRequest, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		done:       make(chan struct{}),
		store:      store,
		hm:         hm,
	}
}

func (h *Hub) run() {
	idleTimer := time.NewTicker(hubIdleTimeout)
	defer idleTimer.Stop()
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case req := <-h.requests:
			switch req.Type {
			case reqTypeJoin:
				if !h.clients[req.Client] {
					continue
				}
				h.handleJoin(req.Client, req.Message)
			case reqTypeBroadcast:
				h.broadcast(req.Message)
			case reqTypeCount:
				req.Reply <- len(h.clients)
			}
		case <-idleTimer.C:
			if len(h.clients) == 0 && h.hm.removeHub(h) {
				return
			}
		}
	}
}

// handleJoin acknowledges a client. On a single-simulation hub it first
// replays the stored events after the client's last sequence number.
func (h *Hub) handleJoin(c *wsClient, msg Message) {
	if h.simId == feedAll || h.store == nil {
		c.sendJSON(Message{Type: MsgTypeAck, SimId: h.simId})
		return
	}
	rec, err := h.store.LoadSim(h.simId)
	if err != nil || rec.Status == StatusDeleted {
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("Hub: Error loading simulation %s: %v", h.simId, err)
		}
		c.sendJSON(Message{Type: MsgTypeError, SimId: h.simId, Error: "Simulation not found"})
		return
	}
	var missed []PlayEvent
	for _, ev := range rec.Events {
		if ev.Seq > msg.LastSeq {
			missed = append(missed, ev)
		}
	}
	if len(missed) == 0 {
		c.sendJSON(Message{Type: MsgTypeAck, SimId: h.simId})
		return
	}
	c.sendJSON(Message{Type: MsgTypeSyncUpdate, SimId: h.simId, Events: missed})
}

func (h *Hub) broadcast(msg Message) {
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			// Too slow to keep up. Closing the connection ends its pumps.
			delete(h.clients, client)
			client.conn.Close()
		}
	}
}

// FeedHub manages the per-simulation hubs. It is the EventSink the
// simulator publishes to.
type FeedHub struct {
	hubs  map[string]*Hub
	mu    sync.Mutex
	store *SimStore
}

func NewFeedHub(store *SimStore) *FeedHub {
	return &FeedHub{
		hubs:  make(map[string]*Hub),
		store: store,
	}
}

func (hm *FeedHub) getHub(simId string) *Hub {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	if hub, ok := hm.hubs[simId]; ok {
		return hub
	}
	hub := newHub(simId, hm.store, hm)
	hm.hubs[simId] = hub
	go hub.run()
	return hub
}

// removeHub drops h if it is still the registered hub for its simulation.
func (hm *FeedHub) removeHub(h *Hub) bool {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	if hm.hubs[h.simId] != h {
		return false
	}
	delete(hm.hubs, h.simId)
	return true
}

// join registers c with the hub for simId, retrying if that hub shut
// down in the meantime.
func (hm *FeedHub) join(simId string, c *wsClient) *Hub {
	for {
		hub := hm.getHub(simId)
		select {
		case hub.register <- c:
			return hub
		case <-hub.done:
		}
	}
}

// Publish sends ev to the hub following simId and to the feedAll hub.
// It never blocks the simulation: a full hub drops the event.
func (hm *FeedHub) Publish(simId string, ev PlayEvent) {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	for _, key := range []string{simId, feedAll} {
		hub, ok := hm.hubs[key]
		if !ok {
			continue
		}
		e := ev
		select {
		case hub.requests <- hubRequest{Type: reqTypeBroadcast, Message: Message{Type: MsgTypeEvent, SimId: simId, Event: &e}}:
		default:
			log.Printf("Warning: Hub channel full, dropping event %d for simulation %s", ev.Seq, simId)
		}
	}
}

// Clients returns the number of connected feed clients.
func (hm *FeedHub) Clients() int {
	hm.mu.Lock()
	hubs := make([]*Hub, 0, len(hm.hubs))
	for _, h := range hm.hubs {
		hubs = append(hubs, h)
	}
	hm.mu.Unlock()

	n := 0
	for _, h := range hubs {
		reply := make(chan int, 1)
		select {
		case h.requests <- hubRequest{Type: reqTypeCount, Reply: reply}:
		case <-h.done:
			continue
		}
		select {
		case c := <-reply:
			n += c
		case <-h.done:
		}
	}
	return n
}

// wsClient is a middleman between the websocket connection and the hub.
type wsClient struct {
	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan Message
}

// readPump pumps messages from the websocket connection to the hub.
func (c *wsClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}

		switch msg.Type {
		case MsgTypeJoin:
			select {
			case c.hub.requests <- hubRequest{Type: reqTypeJoin, Client: c, Message: msg}:
			case <-c.hub.done:
				return
			}
		case MsgTypePing:
			c.sendJSON(Message{Type: MsgTypePong})
		default:
			log.Printf("Unknown message type: %s", msg.Type)
			c.sendJSON(Message{Type: MsgTypeError, Error: "Unknown message type"})
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsClient) sendJSON(msg Message) {
	select {
	case c.send <- msg:
	default:
	}
}

// ServeWS handles feed requests. Without a simId the client follows every
// simulation as it runs.
func (hm *FeedHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	simId := r.URL.Query().Get("simId")
	if simId == "" {
		simId = feedAll
	} else if !isValidUUID(simId) {
		http.Error(w, "Invalid simId", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan Message, 256)}
	client.hub = hm.join(simId, client)

	go client.writePump()
	go client.readPump()
}
