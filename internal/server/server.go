// Package server exposes the match over a websocket so an out-of-process
// view can render hands. The gateway pushes the player's snapshot after
// every state change and accepts action submissions; the bot seat is driven
// internally by the learning agent. No rendering happens here.
package server

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/limit-holdem/internal/bot"
	"github.com/lox/limit-holdem/internal/game"
)

// Server runs one heads-up match per websocket client
type Server struct {
	addr     string
	newGame  func() *game.Game
	newAgent func() *bot.Agent
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// New creates a gateway. The factories supply a fresh game and agent per
// client so matches are independent.
func New(addr string, newGame func() *game.Game, newAgent func() *bot.Agent, logger *log.Logger) *Server {
	return &Server{
		addr:     addr,
		newGame:  newGame,
		newAgent: newAgent,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ListenAndServe blocks serving websocket clients on /play
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/play", s.handlePlay)
	mux.HandleFunc("/health", s.handleHealth)
	s.logger.Info("listening", "addr", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("client connected", "remote", r.RemoteAddr)
	session := newSession(conn, s.newGame(), s.newAgent(), s.logger)
	if err := session.run(); err != nil {
		s.logger.Info("client disconnected", "remote", r.RemoteAddr, "error", err)
	}
}
