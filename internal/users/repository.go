package users

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound is returned when no user has the requested id.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput is returned when a required field is missing on create.
	ErrInvalidInput = errors.New("name and email are required")
)

// User is a single stored record.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateInput carries the fields for a new user. Both are required.
type CreateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateInput carries the fields to merge into an existing user. A nil or
// empty field leaves the stored value unchanged.
type UpdateInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Seed returns the records loaded at startup.
func Seed() []User {
	return []User{
		{ID: 1, Name: "John Doe", Email: "john@example.com"},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com"},
	}
}

// Repository is a thread-safe, in-memory, insertion-ordered user store.
// All public methods are safe for concurrent use and return copies.
type Repository struct {
	mu    sync.RWMutex
	users []User
}

// NewRepository creates a repository holding the given records in order.
func NewRepository(initial ...User) *Repository {
	users := make([]User, len(initial))
	copy(users, initial)
	return &Repository{users: users}
}

// List returns all users in insertion order.
func (r *Repository) List() []User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]User, len(r.users))
	copy(out, r.users)
	return out
}

// Get returns the user with the given id.
func (r *Repository) Get(id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return User{}, fmt.Errorf("get user %d: %w", id, ErrNotFound)
	}
	return r.users[i], nil
}

// Create appends a new user. Its id is one more than the highest id
// currently stored, or 1 if the repository is empty, so the id of a deleted
// maximum can be handed out again.
func (r *Repository) Create(in CreateInput) (User, error) {
	if in.Name == "" || in.Email == "" {
		return User{}, ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u := User{ID: r.nextID(), Name: in.Name, Email: in.Email}
	r.users = append(r.users, u)
	return u, nil
}

// Update merges the provided fields into the user with the given id and
// returns the result. The id and position of the record never change.
func (r *Repository) Update(id int, in UpdateInput) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return User{}, fmt.Errorf("update user %d: %w", id, ErrNotFound)
	}
	u := &r.users[i]
	if in.Name != nil && *in.Name != "" {
		u.Name = *in.Name
	}
	if in.Email != nil && *in.Email != "" {
		u.Email = *in.Email
	}
	return *u, nil
}

// Delete removes the user with the given id and returns its prior state.
func (r *Repository) Delete(id int) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return User{}, fmt.Errorf("delete user %d: %w", id, ErrNotFound)
	}
	removed := r.users[i]
	r.users = append(r.users[:i], r.users[i+1:]...)
	return removed, nil
}

// Len returns the number of stored users.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// indexOf must be called with mu held.
func (r *Repository) indexOf(id int) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID must be called with mu held.
func (r *Repository) nextID() int {
	highest := 0
	for _, u := range r.users {
		if u.ID > highest {
			highest = u.ID
		}
	}
	return highest + 1
}
