package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/shared"
)

type registerRequest struct {
	Username *string `json:"username" validate:"required"`
	Email    *string `json:"email" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type createPlantRequest struct {
	Name        *string  `json:"name" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	PhotoURL    *string  `json:"photo_url" validate:"required"`
}

// validationEntry mirrors one item of a 422 "detail" list.
type validationEntry struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Routes implements [Handler].
func (b *Backend) Routes() []Route {
	auth := func(h http.HandlerFunc) http.Handler { return b.authenticate(h) }

	return []Route{
		{http.MethodGet, "/{$}", http.HandlerFunc(b.handleRoot)},
		{http.MethodGet, "/sample-images", http.HandlerFunc(b.handleSampleImages)},
		{http.MethodPost, "/register", http.HandlerFunc(b.handleRegister)},
		{http.MethodPost, "/login", http.HandlerFunc(b.handleLogin)},
		{http.MethodGet, "/me", auth(b.handleMe)},
		{http.MethodGet, "/plants", auth(b.handleFeed)},
		{http.MethodPost, "/plants", auth(b.handleCreatePlant)},
		{http.MethodGet, "/plants/my", auth(b.handleMyPlants)},
		{http.MethodPost, "/plants/{id}/like", auth(b.handleLike)},
		{http.MethodDelete, "/plants/{id}/like", auth(b.handleUnlike)},
		{http.MethodGet, "/plants/{id}/likes", auth(b.handleLikes)},
	}
}

// Handler assembles the router with the standard middleware stack under /api.
func (b *Backend) Handler() http.Handler {
	router := NewBasicRouter("/api")
	router.Use(RequestIDMiddleware(), LoggingMiddleware(b.logger))
	router.Handler(b)
	return CORSMiddleware()(router)
}

func (b *Backend) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Plant Exchange API"})
}

func (b *Backend) handleSampleImages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"images": b.SampleImages()})
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	_, token, err := b.Register(*req.Username, *req.Email, *req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := b.Login(*req.Username, *req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (b *Backend) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, err := b.Identity(currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

func (b *Backend) handleFeed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.Plants(currentUser(r)))
}

func (b *Backend) handleMyPlants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.PlantsOwnedBy(currentUser(r)))
}

func (b *Backend) handleCreatePlant(w http.ResponseWriter, r *http.Request) {
	var req createPlantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := b.CreatePlant(currentUser(r), models.NewPlant{
		Name:        *req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		PhotoURL:    *req.PhotoURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (b *Backend) handleLike(w http.ResponseWriter, r *http.Request) {
	if err := b.Like(currentUser(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Plant liked successfully"})
}

func (b *Backend) handleUnlike(w http.ResponseWriter, r *http.Request) {
	if err := b.Unlike(currentUser(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Plant unliked successfully"})
}

func (b *Backend) handleLikes(w http.ResponseWriter, r *http.Request) {
	summary, err := b.Likes(currentUser(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// decodeBody decodes and validates a JSON body, writing a 422 and returning false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []validationEntry{{Loc: []string{"body"}, Msg: err.Error(), Type: "json_invalid"}},
		})
		return false
	}

	violations, err := shared.Violations(dst)
	if err != nil {
		writeError(w, err)
		return false
	}
	if len(violations) == 0 {
		return true
	}

	entries := make([]validationEntry, 0, len(violations))
	for _, v := range violations {
		entries = append(entries, validationEntry{Loc: []string{"body", v.Field}, Msg: v.Message, Type: "missing"})
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": entries})
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var se *StatusError
	if errors.As(err, &se) {
		writeJSON(w, se.Status, map[string]string{"detail": se.Detail})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal Server Error"})
}
