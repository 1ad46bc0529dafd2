package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mfranke/numguess/internal/model"
	"github.com/mfranke/numguess/internal/services/auth"
	"github.com/mfranke/numguess/internal/web/middleware"
	"github.com/mfranke/numguess/internal/web/templates/layout"
	"github.com/mfranke/numguess/internal/web/templates/pages"
)

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user != nil {
		// Already logged in, redirect to home
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.LoginData{
		PageData: layout.PageData{
			Title: "Log in",
			Flash: middleware.GetFlash(r.Context()),
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Login(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r.Context()); user != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	// The same message covers unknown users and wrong passwords so the
	// form does not leak which usernames exist.
	_, cookieValue, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		h.renderLoginError(w, r, "Invalid username or password", username)
		return
	}

	h.setSessionCookie(w, cookieValue)
	middleware.SetFlash(w, "success", "Welcome back!")

	if next != "" && strings.HasPrefix(next, "/") {
		http.Redirect(w, r, next, http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user != nil {
		// Already logged in, redirect to home
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.RegisterData{
		PageData: layout.PageData{
			Title: "Register",
			Flash: middleware.GetFlash(r.Context()),
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Register(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r.Context()); user != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, "Invalid form data", pages.RegisterData{})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm")

	form := pages.RegisterData{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}

	// Checks run in a fixed order and only the first failure is reported
	if username == "" || password == "" {
		h.renderRegisterError(w, r, "Username and password are required", form)
		return
	}
	if firstName == "" || lastName == "" || email == "" {
		h.renderRegisterError(w, r, "First name, last name and email are required", form)
		return
	}
	if password != confirm {
		h.renderRegisterError(w, r, "Passwords do not match", form)
		return
	}

	_, err := h.authService.Register(r.Context(), username, password, firstName, lastName, email)
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			h.renderRegisterError(w, r, "Username already taken", form)
		} else {
			h.renderRegisterError(w, r, "Registration failed", form)
		}
		return
	}

	middleware.SetFlash(w, "success", "Registration successful. Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout ends the session and clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.Logout(r.Context(), cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, username string) {
	data := pages.LoginData{
		PageData: layout.PageData{
			Title: "Log in",
		},
		Username: username,
		Error:    errorMsg,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Login(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, r *http.Request, errorMsg string, form pages.RegisterData) {
	form.PageData = layout.PageData{
		Title: "Register",
	}
	form.Error = errorMsg

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Register(form).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
