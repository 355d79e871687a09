package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/demanddesk/api/internal/core/domain"
	"github.com/demanddesk/api/internal/core/ports"
	"github.com/demanddesk/api/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.Context) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.NewContext(session.NewMemStore(), session.NewMemStore(), false)
	return New(srv.URL, sess), sess
}

func TestClient_Login_SavesSession(t *testing.T) {
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "alice@example.com" {
			t.Fatalf("unexpected body: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"msg":   "Login successful",
			"token": "signed.jwt.token",
			"user": map[string]string{
				"id": "user_1", "name": "Alice", "email": "alice@example.com", "role": "user",
			},
		})
	})

	user, err := c.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Name != "Alice" || user.Role != "user" {
		t.Fatalf("unexpected user: %+v", user)
	}

	saved, err := sess.Load()
	if err != nil {
		t.Fatalf("expected session to be saved: %v", err)
	}
	if saved.Token != "signed.jwt.token" || saved.UserID != "user_1" {
		t.Fatalf("unexpected session: %+v", saved)
	}
}

func TestClient_Login_ErrorSurfacesMessage(t *testing.T) {
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "Invalid password"})
	})

	_, err := c.Login(context.Background(), "alice@example.com", "wrong")
	if err == nil || !strings.Contains(err.Error(), "Invalid password") {
		t.Fatalf("expected server message in error, got %v", err)
	}
	if _, err := sess.Load(); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("failed login must not save a session, got %v", err)
	}
}

func TestClient_ListDemands_AttachesToken(t *testing.T) {
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer signed.jwt.token" {
			t.Fatalf("expected bearer token, got %q", got)
		}
		_ = json.NewEncoder(w).Encode([]*domain.Demand{
			{ID: "d1", Title: "Site web", Status: domain.StatusPending},
		})
	})
	_ = sess.Save(&session.Session{Token: "signed.jwt.token", UserID: "user_1"})

	demands, err := c.ListDemands(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(demands) != 1 || demands[0].ID != "d1" {
		t.Fatalf("unexpected demands: %+v", demands)
	}
}

func TestClient_ProtectedCall_WithoutSession(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if _, err := c.ListDemands(context.Background()); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if called {
		t.Fatalf("no request must be sent without a session")
	}
}

func TestClient_CreateDemand(t *testing.T) {
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["title"] != "Site web" || body["category"] != "web" {
			t.Fatalf("unexpected body: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"msg": "Demand created successfully",
			"demand": map[string]any{
				"id": "d1", "title": "Site web", "category": "web", "status": "en-attente",
			},
		})
	})
	_ = sess.Save(&session.Session{Token: "tok", UserID: "user_1"})

	demand, err := c.CreateDemand(context.Background(), ports.CreateDemandInput{
		Title: "Site web", Category: "web", Description: "Besoin d'un site",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if demand.Status != domain.StatusPending {
		t.Fatalf("unexpected demand: %+v", demand)
	}
}

func TestClient_Logout_ClearsSession(t *testing.T) {
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_ = sess.Save(&session.Session{Token: "tok", UserID: "user_1"})

	if err := c.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := sess.Load(); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected cleared session, got %v", err)
	}
}
