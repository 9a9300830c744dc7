package keenetic

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// Session is an HTTP context bound to one router address and one set of
// credentials. It owns a cookie jar that carries the NDM session token.
//
// A Session is meant for one logical operation or poll cycle. It is not safe
// for concurrent authenticated calls racing on the same jar.
type Session struct {
	baseURL    string
	login      string
	password   string
	httpClient *http.Client
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithHTTPClient makes the session use a copy of client, keeping its
// transport. The copy gets its own cookie jar if client has none, so one
// client can be shared by several sessions without sharing logins.
func WithHTTPClient(client *http.Client) SessionOption {
	return func(s *Session) {
		if client != nil {
			c := *client
			s.httpClient = &c
		}
	}
}

// WithTimeout sets the per-request timeout of the session's HTTP client.
// Zero means no timeout. Pass it after WithHTTPClient.
func WithTimeout(timeout time.Duration) SessionOption {
	return func(s *Session) {
		s.httpClient.Timeout = timeout
	}
}

// NewSession creates a session for the router at address. The address is
// normalized: a missing scheme becomes http:// and a trailing slash is dropped.
func NewSession(address, login, password string, opts ...SessionOption) *Session {
	s := &Session{
		baseURL:    utils.NormalizeAddress(address),
		login:      login,
		password:   password,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.httpClient.Jar == nil {
		// cookiejar.New only fails on invalid options
		jar, _ := cookiejar.New(nil)
		s.httpClient.Jar = jar
	}
	return s
}

// BaseURL returns the normalized router base URL.
func (s *Session) BaseURL() string {
	return s.baseURL
}

// Login authenticates the session.
//
// If the router already accepts the session cookie the call returns after a
// single GET. A rejected password yields an ErrAuthFailed error; a router that
// answers with anything other than 200/401, or omits the realm/challenge
// headers, yields ErrInvalidResponse. Nothing is retried.
func (s *Session) Login(ctx context.Context) error {
	resp, err := s.send(ctx, http.MethodGet, authEndpoint, nil)
	if err != nil {
		return err
	}
	drainAndClose(resp)

	if isSuccess(resp.StatusCode) {
		log.Debugf("Session for %s is already authenticated", s.baseURL)
		return nil
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return kerrors.Newf(kerrors.ErrCodeInvalidResponse, "unexpected auth status: %d", resp.StatusCode)
	}

	realm := resp.Header.Get(headerRealm)
	if realm == "" {
		return kerrors.NewInvalidResponseError("missing realm", nil)
	}
	challenge := resp.Header.Get(headerChallenge)
	if challenge == "" {
		return kerrors.NewInvalidResponseError("missing challenge", nil)
	}

	authResp, err := s.send(ctx, http.MethodPost, authEndpoint, authRequest{
		Login:    s.login,
		Password: DigestPassword(s.login, realm, s.password, challenge),
	})
	if err != nil {
		return err
	}
	drainAndClose(authResp)

	if !isSuccess(authResp.StatusCode) {
		return kerrors.Newf(kerrors.ErrCodeAuthFailed, "router %s rejected login %q (status %d)",
			s.baseURL, s.login, authResp.StatusCode)
	}

	log.Debugf("Logged in to %s as %q", s.baseURL, s.login)
	return nil
}

// DigestPassword computes the NDM login digest:
// hex(SHA256(challenge + hex(MD5(login:realm:password)))).
func DigestPassword(login, realm, password, challenge string) string {
	md5Sum := md5.Sum([]byte(login + ":" + realm + ":" + password))
	md5Hex := hex.EncodeToString(md5Sum[:])
	shaSum := sha256.Sum256([]byte(challenge + md5Hex))
	return hex.EncodeToString(shaSum[:])
}

// Do performs a JSON request against endpoint (relative to the base URL) and
// returns the response body. A nil payload sends a GET, otherwise a POST with
// the payload encoded as JSON. An empty body is returned as JSON null.
//
// Do does not log in; Client methods call Login first.
func (s *Session) Do(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	method := http.MethodGet
	if payload != nil {
		method = http.MethodPost
	}

	resp, err := s.send(ctx, method, endpoint, payload)
	if err != nil {
		return nil, err
	}
	defer utils.CloseOrWarn(resp.Body)

	if !isSuccess(resp.StatusCode) {
		return nil, kerrors.Newf(kerrors.ErrCodeInvalidResponse, "%s %s: status %d", method, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, kerrors.NewTransportError(fmt.Sprintf("failed to read %s response", endpoint), err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(body) {
		return nil, kerrors.NewInvalidResponseError(fmt.Sprintf("%s %s: malformed JSON body", method, endpoint), nil)
	}
	return json.RawMessage(body), nil
}

func (s *Session) send(ctx context.Context, method, endpoint string, payload any) (*http.Response, error) {
	url := s.baseURL + "/" + strings.TrimPrefix(endpoint, "/")

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, kerrors.NewInternalError("failed to encode request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, kerrors.NewTransportError(fmt.Sprintf("failed to build %s %s", method, url), err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, kerrors.NewTransportError(fmt.Sprintf("%s %s", method, url), err)
	}
	return resp, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	utils.CloseOrWarn(resp.Body)
}
