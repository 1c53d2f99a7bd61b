// Package testserver runs an in-process fake of the dashboard's REST API.
package testserver

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the lifetime of issued tokens.
const TokenTTL = time.Hour

var signingKey = []byte("pmdash-testserver")

// Account is a login the fake API accepts.
type Account struct {
	Email    string
	Password string
	Username string
	Role     string
}

// DefaultAccounts are seeded into every server.
var DefaultAccounts = []Account{
	{Email: "admin@dost.gov.ph", Password: "admin123", Username: "admin", Role: "admin"},
	{Email: "manager@dost.gov.ph", Password: "manager123", Username: "manager", Role: "project_manager"},
	{Email: "staff@dost.gov.ph", Password: "staff123", Username: "staff", Role: "staff"},
}

type fault struct {
	status  int
	message string
}

// TestServer is a running fake API. Its state lives in memory for the
// lifetime of the test.
type TestServer struct {
	Server *httptest.Server

	Projects *Collection
	Tasks    *Collection
	Users    *Collection

	mu        sync.Mutex
	passwords map[string]string
	faults    map[string]fault
	requests  []string
	now       func() time.Time
}

// New starts a fake API and closes it when t ends.
func New(t *testing.T) *TestServer {
	t.Helper()
	ts := &TestServer{
		Projects:  newCollection(),
		Tasks:     newCollection(),
		Users:     newCollection(),
		passwords: map[string]string{},
		faults:    map[string]fault{},
		now:       time.Now,
	}
	for _, a := range DefaultAccounts {
		ts.AddAccount(a)
	}
	ts.Server = httptest.NewServer(ts.Router())
	t.Cleanup(ts.Server.Close)
	return ts
}

// URL is the API base URL, ending in /api.
func (ts *TestServer) URL() string { return ts.Server.URL + "/api" }

// AddAccount registers a login and its user record.
func (ts *TestServer) AddAccount(a Account) map[string]any {
	rec := ts.Users.Add(map[string]any{
		"email":      a.Email,
		"username":   a.Username,
		"full_name":  a.Username,
		"role":       a.Role,
		"department": "DOST Surigao del Norte",
		"status":     "active",
	})
	ts.mu.Lock()
	ts.passwords[a.Email] = a.Password
	ts.mu.Unlock()
	return rec
}

// Fail makes the next request matching method and path (relative to /api)
// answer status with message.
func (ts *TestServer) Fail(method, path string, status int, message string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.faults[method+" "+path] = fault{status: status, message: message}
}

// Requests lists "METHOD /path" for every request served, in order.
func (ts *TestServer) Requests() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return slices.Clone(ts.requests)
}

// Token issues a token for the account with email, as login would.
func (ts *TestServer) Token(email string, ttl time.Duration) (string, error) {
	rec, ok := ts.Users.FindBy("email", email)
	if !ok {
		return "", fmt.Errorf("no account %q", email)
	}
	claims := jwt.MapClaims{
		"sub": fmt.Sprint(rec["id"]),
		"exp": ts.now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
}

// Router builds the API routes.
func (ts *TestServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(ts.record)
		r.Use(ts.injectFaults)

		r.Post("/login", ts.handleLogin)
		r.Post("/register", ts.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(ts.authMiddleware)
			mountCollection(r, "/projects", ts.Projects)
			mountCollection(r, "/users", ts.Users)
			mountCollection(r, "/tasks", ts.Tasks, func(r chi.Router) {
				r.Patch("/{id}/status", ts.handleTaskStatus)
			})
		})
	})
	return r
}

func (ts *TestServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		ts.requests = append(ts.requests, r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api"))
		ts.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (ts *TestServer) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
		ts.mu.Lock()
		f, ok := ts.faults[key]
		delete(ts.faults, key)
		ts.mu.Unlock()
		if ok {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware enforces bearer token authentication.
func (ts *TestServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		_, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return signingKey, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(ts.now))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (ts *TestServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	ts.mu.Lock()
	want, ok := ts.passwords[body.Email]
	ts.mu.Unlock()
	if !ok || want != body.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	ts.writeSession(w, http.StatusOK, body.Email)
}

func (ts *TestServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)
	if email == "" || password == "" {
		writeError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}
	if _, exists := ts.Users.FindBy("email", email); exists {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	username, _ := body["username"].(string)
	ts.AddAccount(Account{Email: email, Password: password, Username: username, Role: "staff"})
	ts.writeSession(w, http.StatusCreated, email)
}

func (ts *TestServer) writeSession(w http.ResponseWriter, status int, email string) {
	rec, _ := ts.Users.FindBy("email", email)
	token, err := ts.Token(email, TokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, status, map[string]any{"token": token, "user": rec})
}

func (ts *TestServer) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	rec, ok := ts.Tasks.Update(chi.URLParam(r, "id"), map[string]any{"status": body.Status})
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// mountCollection serves list, create, get, replace and delete for c under
// path. extra adds item routes of its own.
func mountCollection(r chi.Router, path string, c *Collection, extra ...func(chi.Router)) {
	r.Route(path, func(r chi.Router) {
		for _, fn := range extra {
			fn(r)
		}
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			filter := map[string]string{}
			for key := range r.URL.Query() {
				filter[key] = r.URL.Query().Get(key)
			}
			writeJSON(w, http.StatusOK, map[string]any{"data": c.List(filter)})
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, "invalid body")
				return
			}
			writeJSON(w, http.StatusCreated, c.Add(body))
		})
		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			rec, ok := c.Get(chi.URLParam(r, "id"))
			if !ok {
				writeError(w, http.StatusNotFound, "Not found")
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"data": rec})
		})
		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, "invalid body")
				return
			}
			rec, ok := c.Update(chi.URLParam(r, "id"), body)
			if !ok {
				writeError(w, http.StatusNotFound, "Not found")
				return
			}
			writeJSON(w, http.StatusOK, rec)
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			if !c.Delete(chi.URLParam(r, "id")) {
				writeError(w, http.StatusNotFound, "Not found")
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
}

// Collection is one REST collection. Records are JSON objects with numeric
// ids, like the real backend's.
type Collection struct {
	mu    sync.Mutex
	next  int
	items []map[string]any
}

func newCollection() *Collection { return &Collection{next: 1} }

// Add stores a copy of fields under a fresh id and returns it.
func (c *Collection) Add(fields map[string]any) map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec := maps.Clone(fields)
	if rec == nil {
		rec = map[string]any{}
	}
	stamp := time.Now().UTC().Format(time.RFC3339)
	rec["id"] = c.next
	rec["created_at"] = stamp
	rec["updated_at"] = stamp
	c.next++
	c.items = append(c.items, rec)
	return maps.Clone(rec)
}

// Get returns the record with id.
func (c *Collection) Get(id string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return nil, false
	}
	return maps.Clone(c.items[i]), true
}

// FindBy returns the first record whose field equals value.
func (c *Collection) FindBy(field string, value any) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.items {
		if rec[field] == value {
			return maps.Clone(rec), true
		}
	}
	return nil, false
}

// List returns records whose fields match every filter entry.
func (c *Collection) List(filter map[string]string) []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []map[string]any{}
	for _, rec := range c.items {
		if matches(rec, filter) {
			out = append(out, maps.Clone(rec))
		}
	}
	return out
}

// Update merges fields into the record with id.
func (c *Collection) Update(id string, fields map[string]any) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return nil, false
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		c.items[i][k] = v
	}
	c.items[i]["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	return maps.Clone(c.items[i]), true
}

// Delete removes the record with id.
func (c *Collection) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

// Len is the number of records.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Collection) index(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return -1
	}
	return slices.IndexFunc(c.items, func(rec map[string]any) bool { return rec["id"] == n })
}

func matches(rec map[string]any, filter map[string]string) bool {
	for k, want := range filter {
		if fmt.Sprint(rec[k]) != want {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
