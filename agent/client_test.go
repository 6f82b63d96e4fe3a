package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInvokeSearchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/api/actions/search_jobs" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var p SearchParams
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("decode params: %v", err)
		}
		if p.Role != "CFO" || p.Location != "London" {
			t.Errorf("params = %+v", p)
		}
		json.NewEncoder(w).Encode(ActionResult{
			Status: StatusComplete,
			Result: "Found 2 CFO opportunities in London.",
		})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).SearchJobs(context.Background(), SearchParams{Role: "CFO", Location: "London", Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusComplete {
		t.Errorf("status = %q", res.Status)
	}
	if !strings.Contains(res.Result, "CFO opportunities") {
		t.Errorf("result = %q", res.Result)
	}
}

func TestInvokeStatsSendsEmptyParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("body must be a JSON object: %v", err)
		}
		json.NewEncoder(w).Encode(ActionResult{Status: StatusInProgress})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).JobStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusInProgress {
		t.Errorf("status = %q", res.Status)
	}
}

func TestInvokeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unknown action"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Invoke(context.Background(), "bogus", nil); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestInvokeMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).JobStats(context.Background()); err == nil {
		t.Error("expected decode error")
	}
}
