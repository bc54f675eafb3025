package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/flintdate/flint-backend/internal/testutil"
	"github.com/flintdate/flint-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocket_RejectsMissingToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	wsURL := "ws" + ts.BaseURL()[4:] + "/api/v1/ws"
	_, resp, err := ws.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocket_ReceivesMessageNotification(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice, alicePassword := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	bob, bobPassword := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	match := testutil.CreateMatch(t, ts.DB.DB, alice, bob)

	aliceToken := testutil.Login(t, ts, alice.Email, alicePassword)
	bobToken := testutil.Login(t, ts, bob.Email, bobPassword)

	conn, _, err := ws.DefaultDialer.Dial(ts.WebSocketURL(bobToken), nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the hub a moment to register the client before sending.
	time.Sleep(100 * time.Millisecond)

	resp := testutil.DoJSON(t, ts, http.MethodPost, "/messages/send", aliceToken, map[string]string{
		"matchId": match.ID.String(),
		"content": "ping over the wire",
	})
	testutil.AssertEnvelope(t, resp, http.StatusOK, nil)
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var event websocket.Event
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, websocket.EventTypeMessageNew, event.Type)

	var payload websocket.MessageNewPayload
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, match.ID.String(), payload.MatchID)
	assert.Equal(t, alice.ID.String(), payload.SenderID)
	assert.Equal(t, "ping over the wire", payload.Content)
}
