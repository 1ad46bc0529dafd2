package handler

import (
	"net/http"

	"github.com/mfranke/numguess/internal/store"
	"github.com/mfranke/numguess/internal/web/middleware"
	"github.com/mfranke/numguess/internal/web/templates/layout"
	"github.com/mfranke/numguess/internal/web/templates/pages"
)

// scoreboardLimit caps the scoreboard shown on the landing and game pages
const scoreboardLimit = 5

// HomeHandler renders the landing page
type HomeHandler struct {
	scores *store.Store
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(scores *store.Store) *HomeHandler {
	return &HomeHandler{
		scores: scores,
	}
}

// Home renders the landing page with the top of the scoreboard
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scores.Scoreboard(r.Context(), scoreboardLimit)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "Numguess",
			User:  middleware.GetUser(r.Context()),
			Flash: middleware.GetFlash(r.Context()),
		},
		Scoreboard: entries,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
