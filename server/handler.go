// Package server is the career agent service: named actions over HTTP that
// reply in the hybrid text+A2UI format, plus the voice-token and health
// endpoints the client expects.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quest/jobs"
	"quest/log"
)

const maxSearchLimit = 10

type searchRequest struct {
	Role       string `json:"role"`
	Location   string `json:"location"`
	RemoteOnly bool   `json:"remote_only"`
	Limit      int    `json:"limit"`
}

type actionReply struct {
	Status string `json:"status"`
	Result string `json:"result,omitempty"`
}

type Handler struct {
	store jobs.Store
	cfg   Config
}

func NewHandler(store jobs.Store, cfg Config) *Handler {
	return &Handler{store: store, cfg: cfg}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/", h.root)
	r.Get("/health", h.health)
	r.Get("/api/stats", h.apiStats)
	r.Get("/api/voice-token", h.voiceToken)
	r.Post("/api/actions/{name}", h.invokeAction)

	return r
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "career_agent",
		"version": "1.0.0",
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) apiStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Stats(r.Context())
	if err != nil {
		log.Errorf("stats query failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stats unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) voiceToken(w http.ResponseWriter, r *http.Request) {
	if h.cfg.VoiceToken == "" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "voice not configured"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": h.cfg.VoiceToken})
}

func (h *Handler) invokeAction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	switch name {
	case "search_jobs":
		h.searchJobs(w, r)
	case "get_job_stats":
		h.jobStats(w, r)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown action: " + name})
	}
}

func (h *Handler) searchJobs(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed parameters"})
		return
	}

	q := jobs.Query{
		Role:       req.Role,
		Location:   req.Location,
		RemoteOnly: req.RemoteOnly,
		Limit:      req.Limit,
	}
	if q.Limit <= 0 || q.Limit > maxSearchLimit {
		q.Limit = jobs.DefaultLimit
	}

	found, err := h.store.Search(r.Context(), q)
	if err != nil {
		log.Errorf("job search failed: %v", err)
		writeJSON(w, http.StatusOK, actionReply{
			Status: "complete",
			Result: "Sorry, I encountered an error searching for jobs. Please try again.",
		})
		return
	}

	result, err := composeSearchResult(found, q)
	if err != nil {
		log.Errorf("compose search result: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "compose failed"})
		return
	}
	writeJSON(w, http.StatusOK, actionReply{Status: "complete", Result: result})
}

func (h *Handler) jobStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Stats(r.Context())
	if err != nil {
		log.Errorf("job stats failed: %v", err)
		writeJSON(w, http.StatusOK, actionReply{
			Status: "complete",
			Result: "Sorry, I couldn't load the market overview. Please try again.",
		})
		return
	}

	result, err := composeStats(st)
	if err != nil {
		log.Errorf("compose stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "compose failed"})
		return
	}
	writeJSON(w, http.StatusOK, actionReply{Status: "complete", Result: result})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
