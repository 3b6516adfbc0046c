package console

import "encoding/json"

// kind discriminates a WebsocketMessage's payload.
type kind string

const (
	kindPing    kind = "ping"
	kindLog     kind = "log"
	kindCommand kind = "command"
)

// WebsocketMessage is the tagged-union wire format for console websocket
// frames: {"type":"ping"} / {"type":"log","data":"..."} /
// {"type":"command","data":"..."}.
type WebsocketMessage struct {
	Type kind   `json:"type"`
	Data string `json:"data,omitempty"`
}

// Ping builds an application-level keep-alive frame.
func Ping() WebsocketMessage { return WebsocketMessage{Type: kindPing} }

// Log builds a server-to-client console chunk frame.
func Log(chunk string) WebsocketMessage { return WebsocketMessage{Type: kindLog, Data: chunk} }

// Command builds a client-to-server command frame.
func Command(cmd string) WebsocketMessage { return WebsocketMessage{Type: kindCommand, Data: cmd} }

// IsPing, IsLog and IsCommand classify a decoded message by its tag.
func (m WebsocketMessage) IsPing() bool    { return m.Type == kindPing }
func (m WebsocketMessage) IsLog() bool     { return m.Type == kindLog }
func (m WebsocketMessage) IsCommand() bool { return m.Type == kindCommand }

// Marshal encodes m as its wire JSON.
func (m WebsocketMessage) Marshal() ([]byte, error) { return json.Marshal(m) }

// ParseMessage decodes a text frame's payload. Unknown tags decode without
// error; callers distinguish them from known tags via Is*.
func ParseMessage(raw []byte) (WebsocketMessage, error) {
	var m WebsocketMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return WebsocketMessage{}, err
	}
	return m, nil
}

// Known reports whether m's tag is one this codec recognizes.
func (m WebsocketMessage) Known() bool {
	return m.IsPing() || m.IsLog() || m.IsCommand()
}
