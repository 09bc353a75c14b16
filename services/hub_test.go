package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habeshaplay/bingo-backend/game"
)

func TestMarshalEventEnvelope(t *testing.T) {
	payload, err := marshalEvent(game.CallEvent{Stake: 10, Number: 42, Called: []int{7, 42}})
	require.NoError(t, err)

	var decoded struct {
		Type string `json:"type"`
		Data struct {
			Stake  int   `json:"stake"`
			Number int   `json:"number"`
			Called []int `json:"called"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "call", decoded.Type)
	assert.Equal(t, 10, decoded.Data.Stake)
	assert.Equal(t, 42, decoded.Data.Number)
	assert.Equal(t, []int{7, 42}, decoded.Data.Called)
}

func TestMarshalWinnerEvent(t *testing.T) {
	payload, err := marshalEvent(game.WinnerEvent{
		Stake:   10,
		House:   true,
		Name:    "house",
		Prize:   48,
		BoardID: 17,
	})
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.JSONEq(t, `"winner"`, string(decoded["type"]))
}

func TestHubDropsUnknownConnection(t *testing.T) {
	h := NewHub()
	// Must not panic or block with no registered client.
	h.Notify("nope", game.NoticeEvent{Message: "hi"})
	h.Broadcast(10, game.PlayersEvent{Stake: 10, Players: 0})
}
