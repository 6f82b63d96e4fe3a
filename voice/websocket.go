package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"quest/log"
)

// event is the wire frame the voice agent sends. Turn events carry a
// transcribed utterance; status events track the connection lifecycle.
type event struct {
	Type    string `json:"type"`
	Role    string `json:"role,omitempty"`
	Text    string `json:"text,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

type sessionInit struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Language  string `json:"language,omitempty"`
	Context   string `json:"context,omitempty"`
}

// WebsocketTransport connects to the voice agent's websocket endpoint using
// a fetched credential as bearer token.
type WebsocketTransport struct {
	URL string
}

func NewWebsocket(url string) *WebsocketTransport {
	return &WebsocketTransport{URL: url}
}

func (t *WebsocketTransport) Name() string { return "websocket" }

func (t *WebsocketTransport) Connect(ctx context.Context, cred Credential, cfg SessionConfig) (Session, error) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+cred.AccessToken)

	sessCtx, cancel := context.WithCancel(ctx)
	conn, _, err := websocket.Dial(sessCtx, t.URL, &websocket.DialOptions{HTTPHeader: headers})
	if err != nil {
		cancel()
		return nil, err
	}

	init, err := json.Marshal(sessionInit{
		Type:      "session.init",
		SessionID: uuid.NewString(),
		Language:  cfg.Language,
		Context:   cfg.Context,
	})
	if err == nil {
		err = conn.Write(sessCtx, websocket.MessageText, init)
	}
	if err != nil {
		conn.Close(websocket.StatusInternalError, "init failed")
		cancel()
		return nil, err
	}

	s := &wsSession{
		conn:   conn,
		ctx:    sessCtx,
		cancel: cancel,
		turns:  make(chan Turn, 16),
		status: make(chan Status, 4),
	}
	s.pushStatus(StatusConnecting)
	go s.runReceiver()
	return s, nil
}

type wsSession struct {
	conn   *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	turns  chan Turn
	status chan Status

	mu      sync.Mutex
	closing bool
}

func (s *wsSession) Turns() <-chan Turn { return s.turns }

func (s *wsSession) Status() <-chan Status { return s.status }

func (s *wsSession) Close() error {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()
	err := s.conn.Close(websocket.StatusNormalClosure, "")
	s.cancel()
	return err
}

func (s *wsSession) runReceiver() {
	defer close(s.turns)
	defer close(s.status)

	for {
		_, data, err := s.conn.Read(s.ctx)
		if err != nil {
			s.mu.Lock()
			closing := s.closing
			s.mu.Unlock()
			if closing {
				s.pushStatus(StatusDisconnected)
			} else {
				log.Errorf("voice receive error: %v", err)
				s.pushStatus(StatusError)
			}
			return
		}

		var ev event
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Warnf("voice frame decode error: %v", err)
			continue
		}

		switch ev.Type {
		case "turn", "transcript":
			if ev.Text == "" {
				continue
			}
			select {
			case s.turns <- Turn{Role: ev.Role, Text: ev.Text}:
			case <-s.ctx.Done():
				s.pushStatus(StatusDisconnected)
				return
			}
		case "status":
			s.pushStatus(Status(ev.Status))
		case "error":
			log.Errorf("voice agent error: %s", ev.Message)
			s.pushStatus(StatusError)
		}
	}
}

// pushStatus never blocks; the consumer only cares about the latest state,
// so a full buffer drops the oldest update.
func (s *wsSession) pushStatus(st Status) {
	for {
		select {
		case s.status <- st:
			return
		default:
			select {
			case <-s.status:
			default:
			}
		}
	}
}
