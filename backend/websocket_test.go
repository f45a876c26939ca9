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
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/text/language"
)

func newTestFeed(t *testing.T) (*FeedHub, *SimStore, func(simId string) string) {
	t.Helper()
	store, _ := newTestSimStore(t, 10)
	hm := NewFeedHub(store)
	server := httptest.NewServer(http.HandlerFunc(hm.ServeWS))
	t.Cleanup(server.Close)

	getWSURL := func(simId string) string {
		u, _ := url.Parse(server.URL)
		u.Scheme = "ws"
		u.Path = "/api/feed"
		if simId != "" {
			q := u.Query()
			q.Set("simId", simId)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	return hm, store, getWSURL
}

func dialFeed(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	return msg
}

func joinFeed(t *testing.T, conn *websocket.Conn, lastSeq int) Message {
	t.Helper()
	if err := conn.WriteJSON(Message{Type: MsgTypeJoin, LastSeq: lastSeq}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	return readMessage(t, conn)
}

func TestFeedFollowsAllSimulations(t *testing.T) {
	hm, _, getWSURL := newTestFeed(t)
	conn := dialFeed(t, getWSURL(""))

	if msg := joinFeed(t, conn, 0); msg.Type != MsgTypeAck {
		t.Fatalf("Expected ACK, got %+v", msg)
	}
	if n := hm.Clients(); n != 1 {
		t.Errorf("Expected 1 client, got %d", n)
	}

	sim := NewSimulator(hm, language.English, 0, false)
	rec, err := sim.Run(context.Background(), newTestRequest(t, 5))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i, want := range rec.Events {
		msg := readMessage(t, conn)
		if msg.Type != MsgTypeEvent || msg.Event == nil {
			t.Fatalf("Expected EVENT %d, got %+v", i, msg)
		}
		if msg.SimId != rec.ID {
			t.Errorf("Expected simId %s, got %s", rec.ID, msg.SimId)
		}
		if msg.Event.Seq != want.Seq || msg.Event.Description != want.Description {
			t.Errorf("Event %d: expected %d %q, got %d %q", i, want.Seq, want.Description, msg.Event.Seq, msg.Event.Description)
		}
	}
}

func TestFeedReplaysStoredEvents(t *testing.T) {
	_, store, getWSURL := newTestFeed(t)

	rec := testRecord(1)
	rec.Events = []PlayEvent{
		{Seq: 1, Type: EventAtBat, Outcome: "walk"},
		{Seq: 2, Type: EventSteal, Outcome: "safe"},
		{Seq: 3, Type: EventAtBat, Outcome: "strikeout"},
	}
	if err := store.SaveSim(rec); err != nil {
		t.Fatalf("SaveSim failed: %v", err)
	}

	tests := []struct {
		name     string
		lastSeq  int
		wantType string
		wantSeqs []int
	}{
		{name: "from start", lastSeq: 0, wantType: MsgTypeSyncUpdate, wantSeqs: []int{1, 2, 3}},
		{name: "missed two", lastSeq: 1, wantType: MsgTypeSyncUpdate, wantSeqs: []int{2, 3}},
		{name: "up to date", lastSeq: 3, wantType: MsgTypeAck},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conn := dialFeed(t, getWSURL(rec.ID))
			msg := joinFeed(t, conn, tc.lastSeq)
			if msg.Type != tc.wantType {
				t.Fatalf("Expected %s, got %+v", tc.wantType, msg)
			}
			if len(msg.Events) != len(tc.wantSeqs) {
				t.Fatalf("Expected %d events, got %d", len(tc.wantSeqs), len(msg.Events))
			}
			for i, seq := range tc.wantSeqs {
				if msg.Events[i].Seq != seq {
					t.Errorf("Expected seq %d, got %d", seq, msg.Events[i].Seq)
				}
			}
		})
	}

	t.Run("deleted", func(t *testing.T) {
		if err := store.DeleteSim(rec.ID); err != nil {
			t.Fatalf("DeleteSim failed: %v", err)
		}
		conn := dialFeed(t, getWSURL(rec.ID))
		if msg := joinFeed(t, conn, 0); msg.Type != MsgTypeError {
			t.Errorf("Expected ERROR, got %+v", msg)
		}
	})
}

func TestFeedErrors(t *testing.T) {
	_, _, getWSURL := newTestFeed(t)

	t.Run("invalid simId", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(getWSURL("not-a-uuid"), nil)
		if err == nil {
			t.Fatal("Expected dial to fail")
		}
		if resp == nil || resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %v", resp)
		}
	})

	t.Run("unknown simulation", func(t *testing.T) {
		conn := dialFeed(t, getWSURL(uuid.NewString()))
		msg := joinFeed(t, conn, 0)
		if msg.Type != MsgTypeError || msg.Error != "Simulation not found" {
			t.Errorf("Expected not found error, got %+v", msg)
		}
	})

	t.Run("ping", func(t *testing.T) {
		conn := dialFeed(t, getWSURL(""))
		if err := conn.WriteJSON(Message{Type: MsgTypePing}); err != nil {
			t.Fatalf("WriteJSON failed: %v", err)
		}
		if msg := readMessage(t, conn); msg.Type != MsgTypePong {
			t.Errorf("Expected PONG, got %+v", msg)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		conn := dialFeed(t, getWSURL(""))
		if err := conn.WriteJSON(Message{Type: "BOGUS"}); err != nil {
			t.Fatalf("WriteJSON failed: %v", err)
		}
		if msg := readMessage(t, conn); msg.Type != MsgTypeError {
			t.Errorf("Expected ERROR, got %+v", msg)
		}
	})
}

func TestFeedPublishWithoutClients(t *testing.T) {
	hm := NewFeedHub(nil)
	// No hub exists, so this must return without blocking.
	hm.Publish(uuid.NewString(), PlayEvent{Seq: 1})
	if n := hm.Clients(); n != 0 {
		t.Errorf("Expected 0 clients, got %d", n)
	}
}
