package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/mfranke/numguess/internal/services/game"
	"github.com/mfranke/numguess/internal/store"
	"github.com/mfranke/numguess/internal/web/middleware"
	"github.com/mfranke/numguess/internal/web/templates/components"
	"github.com/mfranke/numguess/internal/web/templates/layout"
	"github.com/mfranke/numguess/internal/web/templates/pages"
)

// GameHandler handles the game page and guess submissions
type GameHandler struct {
	gameService *game.Service
	scores      *store.Store
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService *game.Service, scores *store.Store) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		scores:      scores,
	}
}

// gameResponse is the JSON shape for fragment-mode game actions
type gameResponse struct {
	Feedback       string `json:"feedback"`
	FeedbackType   string `json:"feedback_type"`
	Attempts       int    `json:"attempts"`
	LatestScore    *int   `json:"latest_score"`
	Guess          string `json:"guess"`
	ImageURL       string `json:"image_url"`
	ScoreboardHTML string `json:"scoreboard_html"`
}

// View renders the game page, starting a round if none is under way
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSessionToken(r.Context())

	state, err := h.gameService.State(r.Context(), token)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderPage(w, r, pages.GameData{
		Attempts: state.Attempts,
		ImageURL: game.ImageURL(state.Attempts, false),
	})
}

// Action handles a game form submission, either a guess or a reset.
// Requests carrying X-Requested-With: XMLHttpRequest or accepting JSON
// get a JSON fragment instead of a full page.
func (h *GameHandler) Action(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	user := middleware.GetUser(r.Context())
	token := middleware.GetSessionToken(r.Context())

	var result *game.Result
	var err error
	switch r.FormValue("action") {
	case "reset":
		result, err = h.gameService.Reset(r.Context(), token)
	default:
		result, err = h.gameService.Guess(r.Context(), token, user, r.FormValue("guess"))
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		h.renderJSON(w, r, result)
		return
	}

	data := pages.GameData{
		Feedback:     result.Message,
		FeedbackType: string(result.Category),
		Attempts:     result.Attempts,
		Guess:        result.Guess,
		ImageURL:     game.ImageURL(result.Attempts, result.Won),
	}
	if result.Won {
		tries := result.WonTries
		data.LatestScore = &tries
	}
	h.renderPage(w, r, data)
}

func (h *GameHandler) renderPage(w http.ResponseWriter, r *http.Request, data pages.GameData) {
	entries, err := h.scores.Scoreboard(r.Context(), scoreboardLimit)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data.PageData = layout.PageData{
		Title: "Game",
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}
	data.Scoreboard = entries

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Game(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *GameHandler) renderJSON(w http.ResponseWriter, r *http.Request, result *game.Result) {
	entries, err := h.scores.Scoreboard(r.Context(), scoreboardLimit)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	scoreboardHTML, err := templ.ToGoHTML(r.Context(), components.Scoreboard(entries))
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	resp := gameResponse{
		Feedback:       result.Message,
		FeedbackType:   string(result.Category),
		Attempts:       result.Attempts,
		Guess:          result.Guess,
		ImageURL:       game.ImageURL(result.Attempts, result.Won),
		ScoreboardHTML: string(scoreboardHTML),
	}
	if result.Won {
		tries := result.WonTries
		resp.LatestScore = &tries
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

func wantsJSON(r *http.Request) bool {
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
