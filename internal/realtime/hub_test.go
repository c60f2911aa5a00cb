package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hospital-ops-backend/internal/state"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastWithoutClients(t *testing.T) {
	h := NewHub()
	// Must not panic or block
	h.Broadcast(state.ChangeEvent{Table: state.TableBeds, Kind: state.ChangeUpdate})
}

func TestBroadcastReachesClient(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration happens in ServeWS before the pumps start; give the
	// handler a moment to finish
	time.Sleep(50 * time.Millisecond)

	h.Broadcast(state.ChangeEvent{Table: state.TablePatients, Kind: state.ChangeInsert})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event state.ChangeEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, state.TablePatients, event.Table)
	assert.Equal(t, state.ChangeInsert, event.Kind)
}
