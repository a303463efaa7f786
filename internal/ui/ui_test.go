package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/services"
	"github.com/desertthunder/plantx/internal/session"
	"github.com/desertthunder/plantx/internal/shared"
	"github.com/desertthunder/plantx/internal/tasks"
	tu "github.com/desertthunder/plantx/internal/testing"
)

func newTestModel(t *testing.T, baseURL string) (Model, *session.Store) {
	t.Helper()

	store := session.NewStore(nil, nil, nil)
	svc := services.NewPlantService(services.PlantServiceOpts{BaseURL: baseURL, Tokens: store})
	store.SetVerifier(svc)

	m := NewModel(context.Background(), Deps{
		Session: store,
		Auth:    tasks.NewAuthForm(svc, store, nil),
		Feed:    tasks.NewFeed(svc, store, nil),
		Form:    tasks.NewListingForm(svc, nil),
		Owned:   tasks.NewOwned(svc, 2, nil),
	})
	return m, store
}

// step applies msg and returns the updated model and follow-up command.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return model, cmd
}

// run executes cmd synchronously and applies the resulting message.
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return step(t, m, cmd())
}

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Username != "alice" || body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok123","token_type":"bearer"}`))
	})
	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid authentication credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"username":"alice","email":"alice@example.com"}`))
	})
	mux.HandleFunc("GET /api/plants", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":10,"name":"Monstera","description":"big","price":25,"photo_url":"https://example.com/m.jpg","owner_id":1,"owner_username":"alice","likes_count":0,"liked_by":[],"is_liked_by_user":false},
			{"id":11,"name":"Fern","description":"small","price":8.5,"photo_url":"https://example.com/f.jpg","owner_id":2,"owner_username":"bob","likes_count":1,"liked_by":[3],"is_liked_by_user":false}
		]`))
	})

	// Writes and ownership reads always fail.
	mux.HandleFunc("POST /api/plants/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"like rejected upstream"}`))
	})
	mux.HandleFunc("GET /api/plants/my", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"owned listings unavailable"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveView(t *testing.T) {
	alice := &models.Identity{ID: "1", Username: "alice"}

	tests := []struct {
		name     string
		identity *models.Identity
		tab      Tab
		want     ViewState
	}{
		{"no identity on discover", nil, DiscoverTab, AuthView},
		{"no identity on add", nil, AddTab, AuthView},
		{"no identity on mine", nil, MineTab, AuthView},
		{"discover", alice, DiscoverTab, DiscoverView},
		{"add", alice, AddTab, AddView},
		{"mine", alice, MineTab, MineView},
		{"unknown tab", alice, Tab(42), DiscoverView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveView(tt.identity, tt.tab); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPlantItem(t *testing.T) {
	plant := models.Plant{ID: "10", Name: "Monstera", Price: 25, OwnerID: "1", OwnerUsername: "alice", LikesCount: 2}

	t.Run("owned listing renders no like control", func(t *testing.T) {
		desc := plantItem{plant: plant, canLike: false}.Description()
		if strings.Contains(desc, "♡") || strings.Contains(desc, "♥") {
			t.Errorf("expected no like control, got %q", desc)
		}
		if !strings.Contains(desc, "yours") {
			t.Errorf("expected owner marker, got %q", desc)
		}
	})

	t.Run("liked listing", func(t *testing.T) {
		liked := plant
		liked.LikedByUser = true
		if desc := (plantItem{plant: liked, canLike: true}).Description(); !strings.Contains(desc, "♥") {
			t.Errorf("expected filled heart, got %q", desc)
		}
	})

	t.Run("unliked listing", func(t *testing.T) {
		if desc := (plantItem{plant: plant, canLike: true}).Description(); !strings.Contains(desc, "♡") {
			t.Errorf("expected empty heart, got %q", desc)
		}
	})

	t.Run("owned item likers", func(t *testing.T) {
		pending := ownedItem{plant: plant}
		if !strings.Contains(pending.Description(), "loading likers") {
			t.Errorf("expected loading marker, got %q", pending.Description())
		}

		loaded := plant
		loaded.Likers = []models.Liker{{ID: "2", Username: "bob"}, {ID: "3", Username: "carol"}}
		desc := ownedItem{plant: loaded, loaded: true}.Description()
		if !strings.Contains(desc, "liked by bob, carol") {
			t.Errorf("expected likers, got %q", desc)
		}
	})
}

func TestModel(t *testing.T) {
	t.Run("starts on the auth view", func(t *testing.T) {
		m, _ := newTestModel(t, fakeAPI(t).URL+"/api")
		if got := m.current(); got != AuthView {
			t.Fatalf("expected AuthView, got %v", got)
		}
		if !strings.Contains(m.View(), "Log in") {
			t.Error("expected login form to be rendered")
		}
	})

	t.Run("login routes to discover and loads the feed", func(t *testing.T) {
		m, store := newTestModel(t, fakeAPI(t).URL+"/api")
		m.auth.Set(tasks.AuthUsername, "alice")
		m.auth.Set(tasks.AuthPassword, "secret")

		m, cmd := run(t, m, m.submitAuth())
		if store.Credential() != "tok123" {
			t.Fatalf("expected credential tok123, got %q", store.Credential())
		}
		if identity := store.Identity(); identity == nil || identity.ID != "1" {
			t.Fatalf("expected identity 1, got %+v", identity)
		}
		if got := m.current(); got != DiscoverView {
			t.Fatalf("expected DiscoverView, got %v", got)
		}

		m, _ = run(t, m, cmd)
		items := m.feedList.Items()
		if len(items) != 2 {
			t.Fatalf("expected 2 listings, got %d", len(items))
		}

		own := items[0].(plantItem)
		if own.canLike {
			t.Error("expected own listing to have no like control")
		}
		if desc := own.Description(); strings.Contains(desc, "♡") || strings.Contains(desc, "♥") {
			t.Errorf("expected no like control, got %q", desc)
		}
		if other := items[1].(plantItem); !other.canLike {
			t.Error("expected other listing to be likeable")
		}
	})

	t.Run("failed login stays on auth with detail", func(t *testing.T) {
		m, store := newTestModel(t, fakeAPI(t).URL+"/api")
		m.auth.Set(tasks.AuthUsername, "alice")
		m.auth.Set(tasks.AuthPassword, "wrong")

		m, _ = run(t, m, m.submitAuth())
		if store.Authenticated() {
			t.Error("expected session to stay empty")
		}
		if got := m.current(); got != AuthView {
			t.Fatalf("expected AuthView, got %v", got)
		}
		if !strings.Contains(m.View(), "Incorrect username or password") {
			t.Error("expected error detail to be rendered")
		}
	})

	t.Run("typing fills the auth form", func(t *testing.T) {
		m, _ := newTestModel(t, fakeAPI(t).URL+"/api")
		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("alice")})
		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
		if m.authFocus != int(tasks.AuthPassword) {
			t.Fatalf("expected email to be skipped in login mode, focus %d", m.authFocus)
		}
		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("secret")})

		m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		m, _ = run(t, m, cmd)
		if got := m.current(); got != DiscoverView {
			t.Fatalf("expected DiscoverView, got %v", got)
		}
	})

	t.Run("failed like and owned read stay silent", func(t *testing.T) {
		m, _ := newTestModel(t, fakeAPI(t).URL+"/api")
		m.auth.Set(tasks.AuthUsername, "alice")
		m.auth.Set(tasks.AuthPassword, "secret")
		m, cmd := run(t, m, m.submitAuth())
		m, _ = run(t, m, cmd)

		fern := m.feedList.Items()[1].(plantItem).plant
		m, _ = run(t, m, m.toggleLike(fern.ID))
		if view := m.View(); strings.Contains(view, "like rejected upstream") {
			t.Errorf("expected like failure to stay out of the view, got %q", view)
		}
		if items := m.feedList.Items(); len(items) != 2 || items[1].(plantItem).plant.LikedByUser {
			t.Error("expected feed to keep its last state")
		}

		m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
		if got := m.current(); got != MineView {
			t.Fatalf("expected MineView, got %v", got)
		}
		m, _ = run(t, m, cmd)
		if m.loading {
			t.Error("expected loading to finish")
		}
		if view := m.View(); strings.Contains(view, "owned listings unavailable") {
			t.Errorf("expected owned failure to stay out of the view, got %q", view)
		}
	})

	t.Run("failed logout is logged", func(t *testing.T) {
		var buf bytes.Buffer
		m, _ := newTestModel(t, fakeAPI(t).URL+"/api")
		m.logger = shared.NewLogger(&buf)
		m.loading = true

		m, _ = step(t, m, errMsg(MsgLoggedOut, errors.New("disk full")))
		if m.loading {
			t.Error("expected loading to be reset")
		}
		if !strings.Contains(buf.String(), "disk full") {
			t.Errorf("expected error to be logged, got %q", buf.String())
		}
	})

	t.Run("mode toggle shows email", func(t *testing.T) {
		m, _ := newTestModel(t, fakeAPI(t).URL+"/api")
		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
		if m.auth.Mode() != tasks.RegisterMode {
			t.Fatal("expected register mode")
		}
		if !strings.Contains(m.View(), "Create an account") {
			t.Error("expected registration form")
		}
	})
}

func TestModelAgainstBackend(t *testing.T) {
	backend := tu.NewTestBackend(t)
	alice, aliceToken := backend.MustRegister(t, "alice")
	bob, _ := backend.MustRegister(t, "bob")
	fern := backend.MustCreatePlant(t, alice, "Fern", 8.5)
	backend.MustCreatePlant(t, bob, "Cactus", 4)
	if err := backend.Like(bob.ID.String(), fern.ID.String()); err != nil {
		t.Fatalf("failed to like: %v", err)
	}

	m, store := newTestModel(t, backend.BaseURL)
	if err := store.Login(context.Background(), aliceToken); err != nil {
		t.Fatalf("failed to log in: %v", err)
	}

	t.Run("tab change resets the form", func(t *testing.T) {
		m, _ := step(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if got := m.current(); got != AddView {
			t.Fatalf("expected AddView, got %v", got)
		}

		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Aloe")})
		if got := m.form.Draft().Name; got != "Aloe" {
			t.Fatalf("expected draft name Aloe, got %q", got)
		}

		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if got := m.current(); got != MineView {
			t.Fatalf("expected MineView, got %v", got)
		}
		if !m.form.Draft().IsZero() {
			t.Errorf("expected draft to be cleared, got %+v", m.form.Draft())
		}
	})

	t.Run("owned listings back-fill likers", func(t *testing.T) {
		m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
		if got := m.current(); got != MineView {
			t.Fatalf("expected MineView, got %v", got)
		}

		m, _ = run(t, m, cmd)
		if len(m.mineList.Items()) != 1 {
			t.Fatalf("expected 1 owned listing, got %d", len(m.mineList.Items()))
		}

		for {
			msg := waitForLikers(m.likers)().(Msg)
			m, _ = step(t, m, msg)
			if !msg.data.(likersPayload).ok {
				break
			}
		}

		item := m.mineList.Items()[0].(ownedItem)
		if !item.loaded {
			t.Fatal("expected likers to be loaded")
		}
		if desc := item.Description(); !strings.Contains(desc, "liked by bob") {
			t.Errorf("expected bob among likers, got %q", desc)
		}
	})

	t.Run("create a listing", func(t *testing.T) {
		m, _ := step(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if got := m.current(); got != AddView {
			t.Fatalf("expected AddView, got %v", got)
		}

		for _, f := range []struct {
			field tasks.Field
			value string
		}{
			{tasks.FieldName, "Pothos"},
			{tasks.FieldDescription, "Trailing vine"},
			{tasks.FieldPrice, "12.50"},
			{tasks.FieldPhotoURL, "https://example.com/p.jpg"},
		} {
			m.formInputs[f.field].SetValue(f.value)
			m.form.Set(f.field, f.value)
		}

		m, _ = run(t, m, m.submitPlant())
		if !m.form.Success() {
			t.Fatalf("expected success, got message %q", m.form.Message())
		}
		if got := m.formInputs[tasks.FieldName].Value(); got != "" {
			t.Errorf("expected inputs to be cleared, got %q", got)
		}
		if !strings.Contains(m.View(), "Plant listed") {
			t.Error("expected success banner")
		}
	})

	t.Run("logout returns to auth", func(t *testing.T) {
		m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
		m, _ = run(t, m, cmd)
		if got := m.current(); got != AuthView {
			t.Fatalf("expected AuthView, got %v", got)
		}
		if store.Authenticated() {
			t.Error("expected session to be cleared")
		}
	})
}
