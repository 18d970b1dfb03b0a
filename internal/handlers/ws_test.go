package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfagnish/users-api/internal/events"
	"github.com/alfagnish/users-api/internal/users"
)

func TestWSHandler_StreamsEvents(t *testing.T) {
	hub := events.NewHub()
	defer hub.Close()

	r := chi.NewRouter()
	r.Get("/ws", NewWSHandler(hub).HandleWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	u := users.User{ID: 3, Name: "Amy", Email: "amy@x.com"}
	hub.Publish(events.Event{Type: events.UserCreated, User: u})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev events.Event
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, events.UserCreated, ev.Type)
	assert.Equal(t, u, ev.User)
}

func TestWSHandler_UnsubscribesOnDisconnect(t *testing.T) {
	hub := events.NewHub()
	defer hub.Close()

	r := chi.NewRouter()
	r.Get("/ws", NewWSHandler(hub).HandleWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	conn.Close()

	assert.Eventually(t, func() bool { return hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWSHandler_RejectsPlainHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	NewWSHandler(events.NewHub()).HandleWS(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
