package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsocketMessage_MarshalRoundTrip(t *testing.T) {
	cases := []WebsocketMessage{
		Ping(),
		Log("[INFO] server started"),
		Command("list"),
	}
	for _, m := range cases {
		raw, err := m.Marshal()
		require.NoError(t, err)
		parsed, err := ParseMessage(raw)
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}

func TestWebsocketMessage_WireShape(t *testing.T) {
	raw, err := Log("hello").Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"log","data":"hello"}`, string(raw))

	raw, err = Ping().Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ping"}`, string(raw))
}

func TestParseMessage_UnknownTagTolerated(t *testing.T) {
	m, err := ParseMessage([]byte(`{"type":"pong","data":"x"}`))
	require.NoError(t, err)
	assert.False(t, m.Known())
}

func TestParseMessage_InvalidJSON(t *testing.T) {
	_, err := ParseMessage([]byte(`not json`))
	require.Error(t, err)
}
