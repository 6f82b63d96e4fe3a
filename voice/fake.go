package voice

import "context"

// FakeTransport replays scripted turns for tests and the -fake client mode.
type FakeTransport struct {
	turns []Turn
	err   error
}

func NewFake(turns []Turn, err error) *FakeTransport {
	return &FakeTransport{turns: turns, err: err}
}

func (f *FakeTransport) Name() string { return "fake" }

func (f *FakeTransport) Connect(_ context.Context, _ Credential, _ SessionConfig) (Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := &fakeSession{
		turns:  make(chan Turn, len(f.turns)+1),
		status: make(chan Status, 4),
		done:   make(chan struct{}),
	}
	s.status <- StatusConnected
	for _, t := range f.turns {
		s.turns <- t
	}
	return s, nil
}

type fakeSession struct {
	turns  chan Turn
	status chan Status
	done   chan struct{}
	closed bool
}

func (s *fakeSession) Turns() <-chan Turn { return s.turns }

func (s *fakeSession) Status() <-chan Status { return s.status }

func (s *fakeSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.status <- StatusDisconnected
	close(s.turns)
	close(s.status)
	close(s.done)
	return nil
}
