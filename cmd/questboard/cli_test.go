package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type stub struct {
	*httptest.Server
	syncs   atomic.Int32
	logouts atomic.Int32
}

func newStub(t *testing.T) *stub {
	t.Helper()
	s := &stub{}
	authed := func(r *http.Request) bool {
		c, err := r.Cookie("sid")
		return err == nil && c.Value == "s3cret"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"user_id": "u1", "name": "Ada", "points": 120},
			{"user_id": "u2", "name": "Grace", "points": 87.5},
		})
	})
	mux.HandleFunc("GET /api/quests", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "q1", "name": "Fix the build", "difficulty": "hard", "completed": true, "completed_by": "u1"},
		})
	})
	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"user_id": "u1", "name": "Ada"})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		s.logouts.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/asana/projects", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{{"gid": "123", "name": "Quest Board"}})
	})
	mux.HandleFunc("GET /api/asana/projects/{gid}/tasks", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"gid":       "t-" + r.PathValue("gid"),
				"name":      "Slay the dragon",
				"completed": false,
				"custom_fields": []map[string]any{
					{"name": "Bounty", "display_value": "50"},
				},
			},
		})
	})
	mux.HandleFunc("POST /api/asana/sync/me", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		s.syncs.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func run(t *testing.T, s *stub, args ...string) (string, error) {
	t.Helper()
	b := &strings.Builder{}
	root := NewRootCmd()
	root.SetOut(b)
	root.SetErr(b)
	root.SetArgs(append([]string{"--api-base", s.URL}, args...))
	err := root.Execute()
	return b.String(), err
}

func TestCLI_Leaderboard(t *testing.T) {
	s := newStub(t)

	out, err := run(t, s, "leaderboard")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	for _, want := range []string{"RANK", "Ada", "120", "Grace", "87.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Ada") > strings.Index(out, "Grace") {
		t.Fatalf("rows reordered:\n%s", out)
	}
}

func TestCLI_LeaderboardJSON(t *testing.T) {
	s := newStub(t)

	out, err := run(t, s, "--json", "leaderboard")
	if err != nil {
		t.Fatalf("leaderboard --json: %v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(rows) != 2 || rows[1]["name"] != "Grace" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestCLI_Me(t *testing.T) {
	s := newStub(t)

	out, err := run(t, s, "--session", "s3cret", "me")
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if !strings.Contains(out, "Logged in as Ada (u1)") {
		t.Fatalf("unexpected output: %q", out)
	}

	_, err = run(t, s, "me")
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("expected not logged in error, got %v", err)
	}
	if !strings.Contains(err.Error(), s.URL+"/api/auth/asana/start") {
		t.Fatalf("error should point at the login address: %v", err)
	}
}

func TestCLI_TasksWithCustomField(t *testing.T) {
	s := newStub(t)

	out, err := run(t, s, "tasks", "123", "--field", "Bounty", "--field", "Priority")
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	for _, want := range []string{"BOUNTY", "PRIORITY", "t-123", "Slay the dragon", "50", "-"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, s, "tasks"); err == nil {
		t.Fatal("expected error without a project gid")
	}
}

func TestCLI_SyncAndLogout(t *testing.T) {
	s := newStub(t)

	if _, err := run(t, s, "sync"); err == nil || err.Error() != "sync failed" {
		t.Fatalf("expected sync failed without session, got %v", err)
	}
	if _, err := run(t, s, "--session", "s3cret", "sync"); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got := s.syncs.Load(); got != 1 {
		t.Fatalf("expected 1 sync, got %d", got)
	}

	out, err := run(t, s, "logout")
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !strings.Contains(out, "Logged out") || s.logouts.Load() != 1 {
		t.Fatalf("logout not sent: out=%q count=%d", out, s.logouts.Load())
	}
}

func TestCLI_ProjectsQuestsHealthLoginURL(t *testing.T) {
	s := newStub(t)

	out, err := run(t, s, "projects")
	if err != nil || !strings.Contains(out, "Quest Board") {
		t.Fatalf("projects: err=%v out=%q", err, out)
	}

	out, err = run(t, s, "quests")
	if err != nil || !strings.Contains(out, "Fix the build") || !strings.Contains(out, "u1") {
		t.Fatalf("quests: err=%v out=%q", err, out)
	}

	out, err = run(t, s, "health")
	if err != nil || strings.TrimSpace(out) != "ok" {
		t.Fatalf("health: err=%v out=%q", err, out)
	}

	out, err = run(t, s, "login-url")
	if err != nil || strings.TrimSpace(out) != s.URL+"/api/auth/asana/start" {
		t.Fatalf("login-url: err=%v out=%q", err, out)
	}
}

func TestCLI_DirectBackendWithoutPrefix(t *testing.T) {
	s := newStub(t)

	// The stub only serves /api routes, so an empty prefix reaches nothing.
	_, err := run(t, s, "--api-prefix", "", "health")
	if err == nil || err.Error() != "backend unhealthy" {
		t.Fatalf("expected backend unhealthy, got %v", err)
	}
}

func TestCLI_RejectsBadBase(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&strings.Builder{})
	root.SetArgs([]string{"--api-base", "localhost:5173", "leaderboard"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for relative base address")
	}
}

func TestCLI_FlagOverridesInvalidEnvBase(t *testing.T) {
	s := newStub(t)
	t.Setenv("QUESTBOARD_API_BASE", "not-a-url")

	out, err := run(t, s, "health")
	if err != nil {
		t.Fatalf("--api-base should replace the invalid env value: %v", err)
	}
	if strings.TrimSpace(out) != "ok" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestLogFailure_IncludesRequestDetail(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() { log.Logger = saved })

	s := newStub(t)
	_, err := run(t, s, "sync")
	if err == nil {
		t.Fatal("expected sync to fail without a session")
	}

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	logFailure(err)

	out := buf.String()
	for _, want := range []string{`"error":"sync failed"`, `"status":401`, `"detail":"sync_me: sync failed (HTTP 401)"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %s: %s", want, out)
		}
	}
}
