package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/limit-holdem/internal/bot"
	"github.com/lox/limit-holdem/internal/game"
	"github.com/lox/limit-holdem/internal/preflop"
	"github.com/lox/limit-holdem/internal/randutil"
)

func testServer(t *testing.T) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	strength := &preflop.Table{Strength: map[string]float64{}}
	newGame := func() *game.Game {
		return game.NewGame(game.DefaultRules(), randutil.New(1))
	}
	newAgent := func() *bot.Agent {
		return bot.NewAgent(bot.NewQTable(), strength, randutil.New(2))
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New("", newGame, newAgent, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/play", s.handlePlay)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/play"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return ts, conn
}

// readUntilPlayerTurn consumes snapshots until the player is to act
func readUntilPlayerTurn(t *testing.T, conn *websocket.Conn) serverMessage {
	t.Helper()
	for i := 0; i < 50; i++ {
		var msg serverMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type != "snapshot" {
			t.Fatalf("unexpected message type %q", msg.Type)
		}
		if msg.Snapshot.ToAct == "player" {
			return msg
		}
	}
	t.Fatal("player never got a turn")
	return serverMessage{}
}

func TestServerPushesSnapshotsAndAcceptsActions(t *testing.T) {
	_, conn := testServer(t)

	msg := readUntilPlayerTurn(t, conn)
	if msg.Snapshot.HandNum != 1 {
		t.Errorf("hand num = %d, want 1", msg.Snapshot.HandNum)
	}
	if len(msg.Snapshot.Hole) != 2 {
		t.Errorf("hole = %v, want 2 cards", msg.Snapshot.Hole)
	}
	if len(msg.Snapshot.LegalActions) == 0 {
		t.Error("no legal actions in player-turn snapshot")
	}

	// A legal submission advances the hand and another snapshot arrives.
	if err := conn.WriteJSON(actionMessage{Action: "call"}); err != nil {
		t.Fatal(err)
	}
	var next serverMessage
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatal(err)
	}
	if next.Error != "" {
		t.Errorf("legal call rejected: %s", next.Error)
	}
}

func TestServerRejectsIllegalAction(t *testing.T) {
	_, conn := testServer(t)

	msg := readUntilPlayerTurn(t, conn)
	pot := msg.Snapshot.Pot

	// First hand the player is the small blind facing the big blind, so a
	// check is illegal.
	if err := conn.WriteJSON(actionMessage{Action: "check"}); err != nil {
		t.Fatal(err)
	}
	var reply serverMessage
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatal(err)
	}
	if reply.Error == "" {
		t.Fatal("illegal check accepted")
	}
	if reply.Snapshot.Pot != pot {
		t.Errorf("pot changed after a rejected action: %d -> %d", pot, reply.Snapshot.Pot)
	}

	// Garbage action names come back as errors too.
	if err := conn.WriteJSON(actionMessage{Action: "shove"}); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatal(err)
	}
	if reply.Error == "" {
		t.Fatal("unknown action accepted")
	}

	// The hand is still live: folding works.
	if err := conn.WriteJSON(actionMessage{Action: "fold"}); err != nil {
		t.Fatal(err)
	}
	// Error is marshalled with omitempty, so reset the reused struct or the
	// stale error from the previous read survives the unmarshal.
	reply = serverMessage{}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatal(err)
	}
	if reply.Error != "" {
		t.Errorf("legal fold rejected: %s", reply.Error)
	}
	if reply.Snapshot.Outcome == nil || !reply.Snapshot.Outcome.ByFold {
		t.Errorf("outcome = %+v, want a fold", reply.Snapshot.Outcome)
	}
}

func TestServerHealthEndpoint(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New("", nil, nil, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
