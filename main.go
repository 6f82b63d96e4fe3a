package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"quest/a2ui"
	"quest/agent"
	"quest/clipboard"
	"quest/log"
	"quest/render"
	"quest/shutdown"
	"quest/transcript"
	"quest/voice"
)

var version = "dev"

var shutdownOnce sync.Once

func gracefulShutdown(store *transcript.Store) {
	shutdownOnce.Do(func() {
		if store != nil && store.Len() > 0 {
			log.SessionEnd(store.Len())
		}
		log.Close()
		tuiMu.Lock()
		p := tuiProgram
		tuiMu.Unlock()
		if p != nil {
			p.Quit()
		}
		os.Exit(0)
	})
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	run()
}

func run() {
	serverFlag := flag.String("server", getenvDefault("QUEST_SERVER_URL", "http://localhost:8000"), "Career agent service base URL")
	voiceFlag := flag.String("voice", os.Getenv("VOICE_AGENT_URL"), "Voice agent websocket URL (empty disables voice)")
	fakeFlag := flag.Bool("fake", false, "Use a scripted fake voice session instead of the network")
	langFlag := flag.String("lang", "en", "Language code for the voice session")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI (otherwise stdin-driven)")
	flag.Parse()

	_ = godotenv.Load()

	if *versionFlag {
		fmt.Printf("quest %s\n", version)
		os.Exit(0)
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	log.SessionStart(*serverFlag, *voiceFlag)

	store := transcript.NewStore()
	agentClient := agent.NewClient(*serverFlag)

	useTUI := *tuiFlag && term.IsTerminal(int(os.Stdout.Fd()))
	if *tuiFlag && !useTUI {
		fmt.Fprintln(os.Stderr, "Warning: stdout is not a terminal, running stdin-driven")
	}

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	go func() {
		<-sigChan
		gracefulShutdown(store)
	}()

	var transport voice.Transport
	switch {
	case *fakeFlag:
		transport = voice.NewFake(demoTurns(), nil)
	case *voiceFlag != "":
		transport = voice.NewWebsocket(*voiceFlag)
	}

	if useTUI {
		runTUI(transport, *serverFlag, *langFlag, store, agentClient)
	} else {
		runHeadless(transport, *serverFlag, *langFlag, store, agentClient)
	}
	gracefulShutdown(store)
}

func runTUI(transport voice.Transport, serverURL, lang string, store *transcript.Store, agentClient *agent.Client) {
	session := newClientSession(store, agentClient, func(msg any) { tuiSend(msg) })

	var renderer *render.Renderer
	renderer = render.New(func(surfaceID string, a a2ui.Action) {
		log.Infof("action committed: %s on %s", a.Name, surfaceID)
		if a.Name == "apply_to_job" {
			if url := renderer.CardURL(surfaceID); url != "" {
				if err := clipboard.Copy(url); err != nil {
					log.Warnf("copy job link: %v", err)
				}
			}
		}
	})

	reconnect := make(chan struct{}, 1)

	tuiMu.Lock()
	tuiProgram = NewTUIProgram(session, renderer, reconnect, transport != nil)
	tuiMu.Unlock()

	if transport != nil {
		go runVoice(transport, serverURL, lang, session, store, reconnect)
	}

	if _, err := tuiProgram.Run(); err != nil {
		log.Errorf("TUI error: %v", err)
		os.Exit(1)
	}
}

// runHeadless reads queries line by line and prints replies, for scripting
// and for terminals the TUI cannot drive.
func runHeadless(transport voice.Transport, serverURL, lang string, store *transcript.Store, agentClient *agent.Client) {
	renderer := render.New(func(surfaceID string, a a2ui.Action) {
		fmt.Printf("[action %s on %s]\n", a.Name, surfaceID)
	})

	replies := make(chan AgentReplyMsg, 4)
	session := newClientSession(store, agentClient, func(msg any) {
		switch m := msg.(type) {
		case TranscriptMsg:
			if m.Role == "assistant" {
				fmt.Printf("agent: %s\n", m.Text)
			}
		case AgentReplyMsg:
			replies <- m
		case AgentErrorMsg:
			fmt.Printf("error: %s\n", m.Err)
		case VoiceStatusMsg:
			fmt.Printf("voice: %s\n", m.Status)
		}
	})

	if transport != nil {
		go runVoice(transport, serverURL, lang, session, store, nil)
	}

	go func() {
		for r := range replies {
			fmt.Printf("agent: %s\n", r.Text)
			if r.UI != nil {
				renderer.Apply(r.UI)
				fmt.Println(renderer.Render(72))
			}
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		session.Submit(line)
	}
	// Give a pending debounced evaluation a chance to run.
	time.Sleep(time.Second)
	session.Stop()
}

// runVoice keeps one voice session alive at a time: fetch a credential,
// connect, pump turns and status into the session, and on failure wait for an
// explicit reconnect request rather than retrying on its own.
func runVoice(transport voice.Transport, serverURL, lang string, session *clientSession, store *transcript.Store, reconnect <-chan struct{}) {
	for {
		var cred voice.Credential
		if transport.Name() != "fake" {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			c, err := voice.FetchToken(ctx, serverURL)
			cancel()
			if err != nil {
				log.Warnf("voice unavailable: %v", err)
				session.send(VoiceStatusMsg{Status: voice.StatusError})
				if !waitReconnect(reconnect) {
					return
				}
				continue
			}
			cred = c
		}

		vs, err := transport.Connect(context.Background(), cred, voice.SessionConfig{
			Language: lang,
			Context:  store.Context(),
		})
		if err != nil {
			log.Errorf("voice connect: %v", err)
			session.send(VoiceStatusMsg{Status: voice.StatusError})
			if !waitReconnect(reconnect) {
				return
			}
			continue
		}

		pumpVoice(vs, session)
		store.ResetSession()
		session.send(VoiceStatusMsg{Status: voice.StatusDisconnected})
		if !waitReconnect(reconnect) {
			return
		}
	}
}

func pumpVoice(vs voice.Session, session *clientSession) {
	turns := vs.Turns()
	status := vs.Status()
	for turns != nil || status != nil {
		select {
		case t, ok := <-turns:
			if !ok {
				turns = nil
				continue
			}
			session.HandleTurn(t)
		case st, ok := <-status:
			if !ok {
				status = nil
				continue
			}
			log.VoiceStatus(string(st))
			session.send(VoiceStatusMsg{Status: st})
		}
	}
	vs.Close()
}

func waitReconnect(reconnect <-chan struct{}) bool {
	if reconnect == nil {
		return false
	}
	_, ok := <-reconnect
	return ok
}

// demoTurns scripts a short conversation for the -fake transport.
func demoTurns() []voice.Turn {
	return []voice.Turn{
		{Role: "user", Text: "Show me CFO jobs in London"},
		{Role: "user", Text: "How is the market looking?"},
	}
}
