// internal/httpserver/routes_daily.go
//
// HTTP routes for the crossword of the day and play history.
//   - GET /daily              → today's board (or ?date=YYYY-MM-DD)
//   - GET /boards/{n}/history → recent checked results for one board
//
// Deterministic board selection is based on date + salt, the same pick the
// terminal session makes.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/TLohan/crossword-app/internal/daily"
	"github.com/TLohan/crossword-app/internal/history"
)

// mountDaily registers the /daily route.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily", s.handleDaily)
}

// dailyRes is returned by /daily.
type dailyRes struct {
	Date  string       `json:"date"`
	Board boardSummary `json:"board"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	day := s.now().UTC()
	if q := r.URL.Query().Get("date"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_date")
			return
		}
		day = t
	}

	boards, err := s.store.Load(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load boards")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	// -1 means there is nothing to pick from.
	idx := daily.BoardIndex(day, s.salt, len(boards))
	if idx < 0 {
		writeError(w, http.StatusNotFound, "no_boards")
		return
	}
	_ = json.NewEncoder(w).Encode(dailyRes{Date: daily.DateKey(day), Board: summarize(idx, boards[idx])})
}

// historyRes is returned by /boards/{n}/history.
type historyRes struct {
	BoardID string           `json:"boardId"`
	Solved  bool             `json:"solved"`
	Recent  []history.Result `json:"recent"`
}

// handleHistory returns the latest results for a board (?limit=, default 10).
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history_disabled")
		return
	}
	_, b, ok := s.board(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.history.Recent(r.Context(), b.ID(), limit)
	if err != nil {
		log.Error().Err(err).Str("board", b.ID()).Msg("load history")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	solved, err := s.history.Solved(r.Context(), b.ID())
	if err != nil {
		log.Error().Err(err).Str("board", b.ID()).Msg("load history")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if rows == nil {
		rows = []history.Result{}
	}
	_ = json.NewEncoder(w).Encode(historyRes{BoardID: b.ID(), Solved: solved, Recent: rows})
}
