package console

import (
	"strings"
	"sync"
	"time"

	"github.com/VERT-sh/waitress/internal/docker"
	"github.com/VERT-sh/waitress/pkg/logger"
	"github.com/gorilla/websocket"
)

const pingInterval = 5 * time.Second

// Session supervises one accepted websocket connection for one server's
// console: a pinger, a stdout forwarder, and an inbound message handler, all
// observing a shared cancellation signal so that any one of them exiting
// winds the other two down.
type Session struct {
	conn   *websocket.Conn
	bridge *docker.Bridge

	writeMu sync.Mutex
	cancel  chan struct{}
	once    sync.Once
}

// New builds a Session wired to conn and bridge. Call Run to drive it.
func New(conn *websocket.Conn, bridge *docker.Bridge) *Session {
	s := &Session{conn: conn, bridge: bridge, cancel: make(chan struct{})}
	conn.SetPingHandler(func(data string) error {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		return s.conn.WriteMessage(websocket.PongMessage, []byte(data))
	})
	return s
}

// Run spawns the three cooperative tasks and blocks until all of them have
// exited. It always returns once the session is over; the caller is then
// free to close the underlying connection.
func (s *Session) Run() {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() { defer wg.Done(); s.pinger() }()
	go func() { defer wg.Done(); s.stdoutForwarder() }()
	go func() { defer wg.Done(); s.inboundHandler() }()

	wg.Wait()
}

// fireCancel closes the cancellation signal and the underlying connection,
// so that a task blocked in ReadMessage (the inbound handler) unblocks
// instead of outliving its peers.
func (s *Session) fireCancel() {
	s.once.Do(func() {
		close(s.cancel)
		s.conn.Close()
	})
}

func (s *Session) writeJSON(v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *Session) pinger() {
	defer s.fireCancel()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.cancel:
			return
		case <-ticker.C:
			if err := s.writeJSON(Ping()); err != nil {
				return
			}
		}
	}
}

func (s *Session) stdoutForwarder() {
	defer s.fireCancel()

	chunks, unsubscribe := s.bridge.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-s.cancel:
			return
		case chunk, ok := <-chunks:
			if !ok {
				return
			}
			trimmed := strings.TrimRight(chunk, "\r\n")
			if err := s.writeJSON(Log(trimmed)); err != nil {
				return
			}
		}
	}
}

func (s *Session) inboundHandler() {
	defer s.fireCancel()

	for {
		msgType, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		if msgType == websocket.TextMessage {
			s.handleText(raw)
		}

		select {
		case <-s.cancel:
			return
		default:
		}
	}
}

func (s *Session) handleText(raw []byte) {
	msg, err := ParseMessage(raw)
	if err != nil {
		logger.Info("invalid console message", map[string]interface{}{"error": err.Error()})
		return
	}

	switch {
	case msg.IsCommand():
		s.bridge.Send(msg.Data + "\n")
	case msg.IsPing():
		// application-level keep-alive from the client, no response required
	default:
		logger.Warn("unhandled console message", map[string]interface{}{"type": msg.Type})
	}
}
