package main

import (
	"context"
	"time"

	"quest/a2ui"
	"quest/agent"
	"quest/debounce"
	"quest/intent"
	"quest/log"
	"quest/transcript"
	"quest/voice"
)

const evalTimeout = 30 * time.Second

// clientSession wires the pipeline together: turns land in the transcript
// store, user turns feed the debounced intent evaluation, and matched intents
// become agent actions whose replies are split and handed to the display.
type clientSession struct {
	store *transcript.Store
	agent *agent.Client
	deb   *debounce.Debouncer
	send  func(any)
}

func newClientSession(store *transcript.Store, agentClient *agent.Client, send func(any)) *clientSession {
	return &clientSession{
		store: store,
		agent: agentClient,
		deb:   debounce.New(debounce.Window),
		send:  send,
	}
}

// HandleTurn records one conversational turn. User turns schedule a debounced
// evaluation of the latest query; a burst of rapid turns evaluates once.
func (s *clientSession) HandleTurn(t voice.Turn) {
	role := transcript.RoleAssistant
	if t.Role == "user" {
		role = transcript.RoleUser
	}
	if !s.store.Append(role, t.Text) {
		return
	}
	log.Turn(string(role), t.Text)
	s.send(TranscriptMsg{Role: string(role), Text: t.Text})

	if role == transcript.RoleUser {
		s.deb.Call(func() {
			s.evaluate(s.store.LastUserQuery())
		})
	}
}

// Submit feeds a typed query through the same path as a spoken one.
func (s *clientSession) Submit(text string) {
	s.HandleTurn(voice.Turn{Role: "user", Text: text})
}

// Stop cancels any pending evaluation.
func (s *clientSession) Stop() {
	s.deb.Stop()
}

func (s *clientSession) evaluate(query string) {
	if query == "" || s.store.AlreadyEvaluated(query) {
		return
	}
	s.store.MarkEvaluated(query)

	res := intent.Detect(query)
	log.Intent(query, res.HasJobIntent, res.HasStatsIntent, res.Role)
	if !res.HasJobIntent && !res.HasStatsIntent {
		return
	}

	s.send(AgentBusyMsg{})

	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	var (
		result agent.ActionResult
		err    error
	)
	if res.HasJobIntent {
		s.store.SetJobQuery(query)
		result, err = s.agent.SearchJobs(ctx, agent.SearchParams{
			Role:       res.Role,
			Location:   res.Location,
			RemoteOnly: res.Remote,
		})
	} else {
		result, err = s.agent.JobStats(ctx)
	}
	if err != nil {
		log.Errorf("agent action failed: %v", err)
		s.send(AgentErrorMsg{Err: err.Error()})
		return
	}

	split := a2ui.Split(result.Result)
	if split.Text != "" {
		s.store.Append(transcript.RoleAssistant, split.Text)
		log.Turn(string(transcript.RoleAssistant), split.Text)
	}
	s.send(AgentReplyMsg{Text: split.Text, UI: split.UI})
}
