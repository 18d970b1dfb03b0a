package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/alfagnish/users-api/internal/events"
	"github.com/alfagnish/users-api/internal/users"
	"github.com/go-chi/chi/v5"
)

const (
	msgUserNotFound   = "User not found"
	msgFieldsRequired = "Name and email are required"
	msgInvalidID      = "Invalid user ID"
	msgInvalidBody    = "Invalid request body"
	msgInternal       = "Internal server error"
)

// UsersHandler exposes CRUD endpoints over the user repository and
// publishes a change event after every successful mutation.
type UsersHandler struct {
	repo *users.Repository
	hub  *events.Hub
}

// NewUsersHandler creates a new UsersHandler. hub may be nil.
func NewUsersHandler(repo *users.Repository, hub *events.Hub) *UsersHandler {
	return &UsersHandler{repo: repo, hub: hub}
}

// Routes registers user routes on the given chi router.
func (h *UsersHandler) Routes(r chi.Router) {
	r.Get("/", h.ListUsers)
	r.Post("/", h.CreateUser)
	r.Get("/{id}", h.GetUser)
	r.Put("/{id}", h.UpdateUser)
	r.Patch("/{id}", h.UpdateUser)
	r.Delete("/{id}", h.DeleteUser)
}

// ListUsers returns all users in insertion order.
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.repo.List())
}

// GetUser returns a single user by id.
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	u, err := h.repo.Get(id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeData(w, http.StatusOK, u)
}

// CreateUser creates a new user from a {name, email} body.
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	in, err := readCreateInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	u, err := h.repo.Create(in)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	h.publish(events.UserCreated, u)
	writeData(w, http.StatusCreated, u)
}

// UpdateUser merges the supplied name and/or email into an existing user.
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	in, err := readUpdateInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	u, err := h.repo.Update(id, in)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	h.publish(events.UserUpdated, u)
	writeData(w, http.StatusOK, u)
}

// DeleteUser removes a user and returns its last state.
func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	u, err := h.repo.Delete(id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	h.publish(events.UserDeleted, u)
	writeData(w, http.StatusOK, u)
}

func (h *UsersHandler) publish(t events.EventType, u users.User) {
	if h.hub == nil {
		return
	}
	h.hub.Publish(events.Event{Type: t, User: u})
}

// userID parses the {id} URL parameter, writing a 400 on failure.
func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

func writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		writeError(w, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, users.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, msgFieldsRequired)
	default:
		log.Printf("users: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
