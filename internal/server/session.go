package server

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/limit-holdem/internal/bot"
	"github.com/lox/limit-holdem/internal/game"
)

// actionMessage is a client action submission
type actionMessage struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// serverMessage is everything the gateway sends: a snapshot after each
// state change, with Error set when the previous submission was rejected.
type serverMessage struct {
	Type     string         `json:"type"` // snapshot or match_over
	Error    string         `json:"error,omitempty"`
	Snapshot *snapshotJSON  `json:"snapshot,omitempty"`
	Stacks   map[string]int `json:"final_stacks,omitempty"`
}

// session drives one match for one client
type session struct {
	conn   *websocket.Conn
	game   *game.Game
	agent  *bot.Agent
	logger *log.Logger
}

func newSession(conn *websocket.Conn, g *game.Game, agent *bot.Agent, logger *log.Logger) *session {
	return &session{conn: conn, game: g, agent: agent, logger: logger}
}

// run plays hands until the match ends or the client goes away. The bot
// seat acts inline; the player seat blocks on the next client message.
func (s *session) run() error {
	for !s.game.MatchOver() {
		if err := s.game.StartHand(); err != nil {
			return err
		}
		if err := s.playHand(); err != nil {
			return err
		}
	}

	final := s.game.Snapshot(game.SeatPlayer)
	return s.conn.WriteJSON(serverMessage{
		Type: "match_over",
		Stacks: map[string]int{
			game.SeatPlayer.String(): final.Stacks[game.SeatPlayer],
			game.SeatBot.String():    final.Stacks[game.SeatBot],
		},
	})
}

func (s *session) playHand() error {
	if err := s.sendSnapshot(""); err != nil {
		return err
	}
	for {
		snap := s.game.Snapshot(game.SeatPlayer)
		if !snap.State.BettingState() {
			s.agent.Finish(float64(s.game.Reward(game.SeatBot)))
			return s.sendSnapshot("")
		}

		if snap.ToAct == game.SeatBot {
			action := s.agent.Act(s.game.Snapshot(game.SeatBot))
			if _, err := s.game.Apply(game.SeatBot, action, 0); err != nil {
				return fmt.Errorf("bot action rejected: %w", err)
			}
			if err := s.sendSnapshot(""); err != nil {
				return err
			}
			continue
		}

		if err := s.handlePlayerTurn(); err != nil {
			return err
		}
	}
}

// handlePlayerTurn reads submissions until one is legal. Illegal ones get
// an error payload plus the unchanged snapshot, and the client tries again.
func (s *session) handlePlayerTurn() error {
	for {
		var msg actionMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("unexpected close: %w", err)
			}
			return err
		}

		action, err := game.ParseAction(msg.Action)
		if err == nil {
			_, err = s.game.Apply(game.SeatPlayer, action, msg.Amount)
		}
		if err != nil {
			s.logger.Debug("rejected action", "action", msg.Action, "error", err)
			if sendErr := s.sendSnapshot(err.Error()); sendErr != nil {
				return sendErr
			}
			continue
		}
		return s.sendSnapshot("")
	}
}

func (s *session) sendSnapshot(errText string) error {
	snap := s.game.Snapshot(game.SeatPlayer)
	return s.conn.WriteJSON(serverMessage{Type: "snapshot", Error: errText, Snapshot: encodeSnapshot(snap)})
}
