// Package voice consumes the remote voice agent: an external service that
// handles capture, codecs and speech itself and hands us transcribed
// conversation turns over a websocket. Only the turn events and the
// connection status are of interest here.
package voice

import "context"

// Status is the connection lifecycle of a voice session.
type Status string

const (
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
	StatusError        Status = "error"
)

// Turn is one transcribed conversational turn delivered by the transport.
type Turn struct {
	Role string // "user" or "assistant"
	Text string
}

// Credential is the short-lived access token fetched from the agent service.
type Credential struct {
	AccessToken string `json:"accessToken"`
}

type SessionConfig struct {
	Language string
	// Context is readable conversation history passed to the agent when a
	// session (re)connects.
	Context string
}

// Session is one live connection. Turns and Status are closed when the
// session ends, whatever the reason.
type Session interface {
	Turns() <-chan Turn
	Status() <-chan Status
	Close() error
}

// Transport opens sessions against a voice agent.
type Transport interface {
	Name() string
	Connect(ctx context.Context, cred Credential, cfg SessionConfig) (Session, error)
}
