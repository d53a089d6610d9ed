package front_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"orderfront/internal/backend/rest"
	"orderfront/internal/front"
	"orderfront/internal/models"
	cartservice "orderfront/internal/service/cart"
	checkoutservice "orderfront/internal/service/checkout"
	"orderfront/internal/session"
	"orderfront/pkg/lib/logger/slogdiscard"
)

// syncBuffer guards the output buffer because commands run off the
// prompt goroutine.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (c *callLog) add(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, s)
}

func (c *callLog) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func newFront(t *testing.T, user models.User, script string, handler http.HandlerFunc, out io.Writer) *front.Front {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := slogdiscard.NewDiscardLogger()
	sess := session.New()
	if user.Id != "" {
		sess.Set("tok", user)
	}
	client := rest.New(log, srv.URL, 5*time.Second, sess)
	cart := cartservice.New(log, client)
	checkout := checkoutservice.New(log, cart, sess, client)

	return front.New(log, client, sess, cart, checkout, strings.NewReader(script), out)
}

func runFront(t *testing.T, user models.User, script string, handler http.HandlerFunc) string {
	t.Helper()

	out := &syncBuffer{}
	f := newFront(t, user, script, handler, out)
	if err := f.Run(context.Background()); err != nil {
		t.Fatalf("front exited with error: %v", err)
	}
	return out.String()
}

func adminBackend(calls *callLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.add(r.Method + " " + r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case strings.HasPrefix(r.URL.Path, "/admin/menu"):
			io.WriteString(w, `{"id":"m1","name":"Pho","price":50000,"available":true}`)
		case r.URL.Path == "/admin/users" && r.Method == http.MethodGet:
			io.WriteString(w, `[{"id":"u1","email":"a@b.c","name":"","role":"admin"}]`)
		case strings.HasPrefix(r.URL.Path, "/admin/users"):
			io.WriteString(w, `{"id":"u2","email":"b@c.d","role":"manager"}`)
		case strings.HasPrefix(r.URL.Path, "/admin/categories"):
			io.WriteString(w, `{"id":"c1","name":"Soups"}`)
		case strings.HasPrefix(r.URL.Path, "/admin/posters"):
			io.WriteString(w, `{"id":"p1","title":"","image":"banner.png"}`)
		default:
			http.NotFound(w, r)
		}
	}
}

func TestAdminMenuCommands(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantCall string
	}{
		{"Create", "admin menu add Pho 50000 c1", "POST /admin/menu"},
		{"Update", "admin menu set m1 Pho 55000", "PUT /admin/menu/m1"},
		{"Delete", "admin menu rm m1", "DELETE /admin/menu/m1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := &callLog{}
			runFront(t, models.User{Id: "u1", Email: "m@r.est", Role: models.RoleManager},
				tt.line+"\nquit\n", adminBackend(calls))
			assert.Equal(t, []string{tt.wantCall}, calls.all())
		})
	}
}

func TestAdminCategoryCommands(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantCall string
	}{
		{"Create", "admin cat add Soups", "POST /admin/categories"},
		{"Update", "admin cat set c1 Noodle soups", "PUT /admin/categories/c1"},
		{"Delete", "admin cat rm c1", "DELETE /admin/categories/c1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := &callLog{}
			runFront(t, models.User{Id: "u1", Email: "m@r.est", Role: models.RoleManager},
				tt.line+"\nquit\n", adminBackend(calls))
			assert.Equal(t, []string{tt.wantCall}, calls.all())
		})
	}
}

func TestAdminPosterCommands(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantCall string
	}{
		{"Create", "admin poster add banner.png Summer specials", "POST /admin/posters"},
		{"Delete", "admin poster rm p1", "DELETE /admin/posters/p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := &callLog{}
			runFront(t, models.User{Id: "u1", Email: "m@r.est", Role: models.RoleManager},
				tt.line+"\nquit\n", adminBackend(calls))
			assert.Equal(t, []string{tt.wantCall}, calls.all())
		})
	}
}

func TestAdminUserCommands(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantCall string
	}{
		{"List", "admin user list", "GET /admin/users"},
		{"Create", "admin user add b@c.d manager pw", "POST /admin/users"},
		{"Update", "admin user set u2 b@c.d manager", "PUT /admin/users/u2"},
		{"Delete", "admin user rm u2", "DELETE /admin/users/u2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := &callLog{}
			runFront(t, models.User{Id: "u1", Email: "a@b.c", Role: models.RoleAdmin},
				tt.line+"\nquit\n", adminBackend(calls))
			assert.Equal(t, []string{tt.wantCall}, calls.all())
		})
	}
}

func TestAdminCommandsNeedStaffRole(t *testing.T) {
	calls := &callLog{}
	out := runFront(t, models.User{Id: "u1", Role: models.RoleCustomer},
		"admin menu rm m1\nquit\n", adminBackend(calls))

	assert.Empty(t, calls.all())
	assert.Contains(t, out, "manager or admin")
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	calls := &callLog{}
	out := runFront(t, models.User{Id: "u1", Role: models.RoleManager},
		"admin user list\nquit\n", adminBackend(calls))

	assert.Empty(t, calls.all())
	assert.Contains(t, out, "admin account")
}

func TestItemCommand(t *testing.T) {
	calls := &callLog{}
	out := runFront(t, models.User{}, "item m1\nquit\n", func(w http.ResponseWriter, r *http.Request) {
		calls.add(r.Method + " " + r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"m1","name":"Pho","price":50000,"available":true}`)
	})

	assert.Equal(t, []string{"GET /menu/m1"}, calls.all())
	assert.Contains(t, out, "Pho")
}

func TestOverlappingCommandIsDropped(t *testing.T) {
	release := make(chan struct{})
	var hits atomic.Int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "[]")
	}

	out := &syncBuffer{}
	f := newFront(t, models.User{Id: "u1", Role: models.RoleCustomer},
		"cart\ncart\nquit\n", handler, out)

	done := make(chan error, 1)
	go func() { done <- f.Run(context.Background()) }()

	// the second cart command must be rejected while the first is
	// still waiting on the backend
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "still running")
	}, time.Second, 10*time.Millisecond)

	close(release)
	assert.NoError(t, <-done)
	assert.Equal(t, int32(1), hits.Load())
}
