package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/Aksharma127/social-to-lead-agent/agent"
	"github.com/Aksharma127/social-to-lead-agent/tools"
)

// chatSession pairs a session's state with the lock that serializes its
// turns: at most one handler executes per session at a time.
type chatSession struct {
	mu    sync.Mutex
	state *agent.ConversationState
}

// sessionRegistry hands out one chatSession per session id. Its own lock
// only guards the map.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*chatSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*chatSession)}
}

func (r *sessionRegistry) get(id string) *chatSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		s = &chatSession{state: agent.NewConversationState(id)}
		r.sessions[id] = s
	}
	return s
}

type turnResult struct {
	Replies      []string `json:"replies"`
	LeadCaptured bool     `json:"lead_captured"`

	justCaptured bool
	lead         tools.Lead
}

// turn runs one user turn for the session. The session lock is held across
// RunTurn, so concurrent requests for the same session run one at a time
// while distinct sessions proceed independently.
func (r *sessionRegistry) turn(ctx context.Context, ag *agent.Agent, id, message string) turnResult {
	s := r.get(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	wasCaptured := s.state.LeadCaptured
	replies := ag.RunTurn(ctx, s.state, message)
	if replies == nil {
		replies = []string{}
	}

	res := turnResult{
		Replies:      replies,
		LeadCaptured: s.state.LeadCaptured,
		justCaptured: !wasCaptured && s.state.LeadCaptured,
	}
	if res.justCaptured {
		res.lead = leadFromState(s.state)
	}
	return res
}

func newAPIHandler(ag *agent.Agent, registry *sessionRegistry, capture tools.CaptureLeadTool, followUp followUpFunc) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req struct {
			SessionID string `json:"session_id"`
			Message   string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		if strings.TrimSpace(req.SessionID) == "" {
			writeJSONError(w, http.StatusBadRequest, "session_id field cannot be empty")
			return
		}

		res := registry.turn(r.Context(), ag, req.SessionID, strings.TrimSpace(req.Message))

		if res.justCaptured && followUp != nil {
			// Draft in the background; it must not hold up the reply and
			// only costs the draft if it fails.
			lead := res.lead
			sessionID := req.SessionID
			go func() {
				draft, err := followUp(context.Background(), lead)
				if err != nil {
					slog.Warn("follow-up pipeline failed", "session", sessionID, "error", err)
					return
				}
				slog.Info("follow-up email drafted", "session", sessionID, "draft", draft)
			}()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	})

	mux.HandleFunc("/leads", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		out, err := capture.Call(r.Context(), string(body))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid lead payload")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"result": out})
	})

	return loggingMiddleware(corsMiddleware(mux))
}

func startAPI(ctx context.Context, ag *agent.Agent, capture tools.CaptureLeadTool, followUp followUpFunc) {
	server := &http.Server{
		Addr:    ":8080",
		Handler: newAPIHandler(ag, newSessionRegistry(), capture, followUp),
	}

	go func() {
		log.Println("Chat API running at http://localhost:8080")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	origin := os.Getenv("ALLOWED_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
