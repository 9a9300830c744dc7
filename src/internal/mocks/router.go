package mocks

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

const fakeSessionCookie = "sysauth"

// RecordedRequest is a request received by a FakeRouter.
type RecordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// FakeRouter emulates the NDM login handshake and a set of RCI endpoints.
//
// GET responses are served from Responses keyed by path without the leading
// slash (e.g. "rci/show/rc/ip/policy"). POSTs to any other path are recorded
// and answered with "{}". Every request except /auth requires the session
// cookie handed out by a successful login.
//
// Example:
//
//	router := mocks.NewFakeRouter()
//	router.Responses["rci/show/rc/ip/policy"] = `{"Policy0": {"description": "VPN"}}`
//	srv := router.Start()
//	defer srv.Close()
//	client := keenetic.NewClientForRouter(srv.URL, router.Login, router.Password)
type FakeRouter struct {
	Login     string
	Password  string
	Realm     string
	Challenge string

	// Responses maps GET paths to raw JSON bodies.
	Responses map[string]string

	// AuthStatus, if non-zero, is returned by GET /auth for unauthenticated
	// requests instead of the 401 challenge.
	AuthStatus int
	// OmitRealm and OmitChallenge drop the corresponding 401 headers.
	OmitRealm     bool
	OmitChallenge bool

	mu       sync.Mutex
	requests []RecordedRequest
	tokens   map[string]bool
	nextID   int
}

// NewFakeRouter creates a router accepting admin/secret.
func NewFakeRouter() *FakeRouter {
	return &FakeRouter{
		Login:     "admin",
		Password:  "secret",
		Realm:     "Keenetic Giga",
		Challenge: "FXHJSDWQPMBUHIUTMDVCGRJSZAEMIKLI",
		Responses: map[string]string{},
		tokens:    map[string]bool{},
	}
}

// Start serves the router on a local httptest server.
func (f *FakeRouter) Start() *httptest.Server {
	return httptest.NewServer(f)
}

// Requests returns a copy of all recorded requests.
func (f *FakeRouter) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// Count returns the number of recorded requests with the given method and path.
func (f *FakeRouter) Count(method, path string) int {
	count := 0
	for _, req := range f.Requests() {
		if req.Method == method && req.Path == path {
			count++
		}
	}
	return count
}

// Posts returns the decoded JSON bodies POSTed to path.
func (f *FakeRouter) Posts(path string) []map[string]any {
	var bodies []map[string]any
	for _, req := range f.Requests() {
		if req.Method != http.MethodPost || req.Path != path {
			continue
		}
		var body map[string]any
		if err := json.Unmarshal(req.Body, &body); err == nil {
			bodies = append(bodies, body)
		}
	}
	return bodies
}

// ServeHTTP implements http.Handler.
func (f *FakeRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, "/")

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{Method: r.Method, Path: path, Body: body})
	f.mu.Unlock()

	if path == "auth" {
		f.serveAuth(w, r, body)
		return
	}

	if !f.authenticated(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		response, ok := f.Responses[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, response)
	case http.MethodPost:
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, "{}")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *FakeRouter) serveAuth(w http.ResponseWriter, r *http.Request, body []byte) {
	switch r.Method {
	case http.MethodGet:
		if f.authenticated(r) {
			w.WriteHeader(http.StatusOK)
			return
		}
		if f.AuthStatus != 0 {
			w.WriteHeader(f.AuthStatus)
			return
		}
		if !f.OmitRealm {
			w.Header().Set("X-NDM-Realm", f.Realm)
		}
		if !f.OmitChallenge {
			w.Header().Set("X-NDM-Challenge", f.Challenge)
		}
		w.WriteHeader(http.StatusUnauthorized)

	case http.MethodPost:
		var req struct {
			Login    string `json:"login"`
			Password string `json:"password"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Login != f.Login || req.Password != f.expectedDigest() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		f.mu.Lock()
		f.nextID++
		token := fmt.Sprintf("token-%d", f.nextID)
		f.tokens[token] = true
		f.mu.Unlock()

		http.SetCookie(w, &http.Cookie{Name: fakeSessionCookie, Value: token, Path: "/"})
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *FakeRouter) authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(fakeSessionCookie)
	if err != nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokens[cookie.Value]
}

func (f *FakeRouter) expectedDigest() string {
	md5Sum := md5.Sum([]byte(f.Login + ":" + f.Realm + ":" + f.Password))
	shaSum := sha256.Sum256([]byte(f.Challenge + hex.EncodeToString(md5Sum[:])))
	return hex.EncodeToString(shaSum[:])
}
