// internal/httpserver/server.go
//
// Read-only HTTP viewer for stored crosswords.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Board endpoints: GET /boards, GET /boards/{n}, GET /boards/{n}/cells.
//   - Daily and history endpoints: mounted from routes_daily.go.
//
// Notes:
//   - Boards are loaded from the store on every request, so the viewer sees
//     whatever the terminal session saved last.
//   - Answers are never served except through the checked cell statuses.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/TLohan/crossword-app/internal/crossword"
	"github.com/TLohan/crossword-app/internal/history"
	"github.com/TLohan/crossword-app/internal/store"
)

// Server bundles the router, the board store and the optional history.
type Server struct {
	r       *chi.Mux
	store   store.Store
	history *history.Store
	salt    string
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithHistory enables GET /boards/{n}/history.
func WithHistory(h *history.Store) Option { return func(s *Server) { s.history = h } }

// WithDailySalt sets the salt used to pick the crossword of the day.
func WithDailySalt(salt string) Option { return func(s *Server) { s.salt = salt } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{r: chi.NewRouter(), store: st, salt: "local_dev_salt", now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"crossword","endpoints":["/health","/boards","/boards/{n}","/boards/{n}/cells","/daily"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/boards", s.handleList)
	s.r.Route("/boards/{n}", func(r chi.Router) {
		r.Get("/", s.handleBoard)
		r.Get("/cells", s.handleCells)
		r.Get("/history", s.handleHistory)
	})
	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("starting crossword viewer")
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ------------------------------ BOARDS -------------------------------------

// boardSummary is one entry of GET /boards.
type boardSummary struct {
	Index     int       `json:"index"`
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Name      string    `json:"name"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Clues     int       `json:"clues"`
	Played    bool      `json:"played"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"createdAt"`
}

func summarize(i int, b *crossword.Board) boardSummary {
	return boardSummary{
		Index:     i,
		ID:        b.ID(),
		Title:     b.Title(),
		Name:      b.Name(),
		Width:     b.Width(),
		Height:    b.Height(),
		Clues:     len(b.Questions()),
		Played:    b.Played(),
		Complete:  b.IsComplete(),
		CreatedAt: b.CreatedAt(),
	}
}

// clueView is a clue without its answer.
type clueView struct {
	Key     string `json:"key"`
	Text    string `json:"text"`
	Length  int    `json:"length"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Guess   string `json:"guess,omitempty"`
	Guessed bool   `json:"guessed"`
}

type boardView struct {
	boardSummary
	Across []clueView `json:"across"`
	Down   []clueView `json:"down"`
}

func clues(qs []crossword.Question) []clueView {
	out := make([]clueView, 0, len(qs))
	for _, q := range qs {
		out = append(out, clueView{
			Key:     q.Key(),
			Text:    q.Text(),
			Length:  q.Length(),
			X:       q.X(),
			Y:       q.Y(),
			Guess:   q.Guess(),
			Guessed: q.Guessed(),
		})
	}
	return out
}

type cellsRes struct {
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Cells     [][]crossword.Cell `json:"cells"`
	Checked   bool               `json:"checked"`
	Incorrect int                `json:"incorrect"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	boards, err := s.store.Load(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load boards")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	out := make([]boardSummary, 0, len(boards))
	for i, b := range boards {
		out = append(out, summarize(i, b))
	}
	_ = json.NewEncoder(w).Encode(out)
}

// board resolves {n} to a stored board, writing the error response itself.
func (s *Server) board(w http.ResponseWriter, r *http.Request) (int, *crossword.Board, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_index")
		return 0, nil, false
	}
	boards, err := s.store.Load(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load boards")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return 0, nil, false
	}
	if n < 0 || n >= len(boards) {
		writeError(w, http.StatusNotFound, "not_found")
		return 0, nil, false
	}
	return n, boards[n], true
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	n, b, ok := s.board(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(boardView{
		boardSummary: summarize(n, b),
		Across:       clues(b.Across()),
		Down:         clues(b.Down()),
	})
}

// handleCells serves the guesses overlay; ?check=1 marks each letter.
func (s *Server) handleCells(w http.ResponseWriter, r *http.Request) {
	_, b, ok := s.board(w, r)
	if !ok {
		return
	}
	check, _ := strconv.ParseBool(r.URL.Query().Get("check"))
	res := cellsRes{Width: b.Width(), Height: b.Height(), Cells: b.GuessCells(check), Checked: check}
	if check {
		res.Incorrect = b.IncorrectLetters()
	}
	_ = json.NewEncoder(w).Encode(res)
}
