package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	diagLog      zerolog.Logger
	diagFile     *os.File
	conversation *os.File
	logMu        sync.Mutex
	logReady     bool
	pid          int
	dir          string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		if !filepath.IsAbs(flagPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, flagPath), nil
		}
		return flagPath, nil
	}

	// Priority 2: QUEST_LOG_PATH environment variable
	envPath := os.Getenv("QUEST_LOG_PATH")
	if envPath != "" {
		if !filepath.IsAbs(envPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, envPath), nil
		}
		return envPath, nil
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error

	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	diagFile, err = os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	convPath := filepath.Join(dir, "conversation_log.txt")
	conversation, err = os.OpenFile(convPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		diagFile.Close()
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	if conversation != nil {
		conversation.Close()
		conversation = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Infof(format string, args ...any) {
	if logReady {
		diagLog.Info().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

// Turn appends a conversation turn to the conversation log file.
func Turn(role, text string) {
	if !logReady {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()
	line := fmt.Sprintf("%s\t[%d]\t%s\t%s\n", time.Now().Format("2006-01-02 15:04:05"), pid, role, text)
	conversation.WriteString(line)
}

// SplitFailure is the side channel for malformed structured payloads: the
// splitter falls back to plain text and the failure lands here.
func SplitFailure(err error, payloadLen int) {
	if !logReady {
		return
	}
	diagLog.Warn().
		Err(err).
		Int("payload_len", payloadLen).
		Msg("a2ui_decode_failed")
}

func UnknownComponent(kind, id string) {
	if !logReady {
		return
	}
	diagLog.Warn().
		Str("component", kind).
		Str("id", id).
		Msg("unknown_component_skipped")
}

func Intent(query string, job, stats bool, role string) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("query", query).
		Bool("job", job).
		Bool("stats", stats).
		Str("role", role).
		Msg("intent_detected")
}

func ActionInvoked(name, status string, tookMs int64) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("action", name).
		Str("status", status).
		Int64("took_ms", tookMs).
		Msg("agent_action")
}

func VoiceStatus(status string) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("status", status).
		Msg("voice_status")
}

func SessionStart(server, voiceURL string) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("server", server).
		Str("voice_url", voiceURL).
		Msg("session_start")
}

func SessionEnd(turns int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("turns", turns).
		Msg("session_end")
}
