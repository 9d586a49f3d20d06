package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitflow-go/internal/platform/config"
	"recruitflow-go/internal/platform/errors"
	platformtesting "recruitflow-go/internal/platform/testing"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := NewClient(config.APIConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
	}, nil, platformtesting.SetupTestLogger(t))
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, _ := sonic.Marshal(v)
	w.Write(data)
}

func TestLogin_StoresTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/token/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var creds map[string]string
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "reclutador@example.com", creds["identifier"])

		writeJSON(w, http.StatusOK, map[string]any{
			"access":  "access-1",
			"refresh": "refresh-1",
			"user":    map[string]any{"id": 7, "role": "recruiter"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.Login(context.Background(), "reclutador@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "access-1", result.Access)
	assert.True(t, client.Authenticated())

	sess := client.Session()
	assert.Equal(t, "refresh-1", sess.Refresh)
	assert.Equal(t, "recruiter", sess.User["role"])
}

func TestLogin_RejectionIsAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "credenciales inválidas"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Login(context.Background(), "user", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuth))
	assert.Contains(t, err.Error(), "credenciales inválidas")
	assert.False(t, client.Authenticated())
}

func TestDo_RefreshAndRetryOnce(t *testing.T) {
	var listCalls, refreshCalls atomic.Int32
	var mu sync.Mutex
	seenTokens := []string{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token/refresh/":
			refreshCalls.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{"access": "access-new"})
		case "/api/candidates/candidates/":
			mu.Lock()
			seenTokens = append(seenTokens, r.Header.Get("Authorization"))
			mu.Unlock()
			if listCalls.Add(1) == 1 {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "token expired"})
				return
			}
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 1}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.mu.Lock()
	client.session.Access = "access-old"
	client.session.Refresh = "refresh-ok"
	client.mu.Unlock()

	resp, err := client.Do(context.Background(), http.MethodGet, "/api/candidates/candidates/", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, int32(2), listCalls.Load())
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, []string{"Bearer access-old", "Bearer access-new"}, seenTokens)
}

func TestDo_SecondUnauthorizedPropagates(t *testing.T) {
	var listCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token/refresh/":
			writeJSON(w, http.StatusOK, map[string]any{"access": "access-new"})
		default:
			listCalls.Add(1)
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "still no"})
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.mu.Lock()
	client.session.Access = "access-old"
	client.session.Refresh = "refresh-ok"
	client.mu.Unlock()

	_, err := client.Do(context.Background(), http.MethodGet, "/api/clients/", nil)
	require.Error(t, err)

	apiErr, ok := errors.AsAPI(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	// one original attempt plus exactly one retry
	assert.Equal(t, int32(2), listCalls.Load())
}

func TestRefresh_NoTokenIsLocalFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuth))
	assert.Contains(t, err.Error(), "no refresh token available")
	assert.Equal(t, int32(0), calls.Load(), "precondition failure must not hit the network")
}

func TestRefresh_FailureClearsSessionOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// slow the refresh down so concurrent callers pile onto one flight
		time.Sleep(20 * time.Millisecond)
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "refresh expired"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.mu.Lock()
	client.session.Access = "access"
	client.session.Refresh = "refresh"
	client.mu.Unlock()

	var expired atomic.Int32
	client.OnSessionExpired = func() { expired.Add(1) }

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Refresh(context.Background())
			assert.Error(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), expired.Load(), "expiry hook must fire exactly once")
	assert.False(t, client.Authenticated())
}

func TestLogout_ClearsEvenWhenNetworkFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "boom"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.mu.Lock()
	client.session.Access = "access"
	client.session.Refresh = "refresh"
	client.mu.Unlock()

	var expired atomic.Int32
	client.OnSessionExpired = func() { expired.Add(1) }

	client.Logout(context.Background())

	assert.False(t, client.Authenticated())
	assert.Equal(t, int32(1), expired.Load())
}

func TestLogout_ClearsOnUnreachableBackend(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	client.mu.Lock()
	client.session.Access = "access"
	client.mu.Unlock()

	client.Logout(context.Background())
	assert.False(t, client.Authenticated())
}

func TestFetchCSRFToken_Endpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/csrf/", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"csrfToken": "csrf-123"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	token := client.FetchCSRFToken(context.Background())
	assert.Equal(t, "csrf-123", token)
	assert.Equal(t, "csrf-123", client.Session().CSRF)
}

func TestFetchCSRFToken_CookieFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "cookie-csrf"})
		writeJSON(w, http.StatusOK, map[string]any{})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	token := client.FetchCSRFToken(context.Background())
	assert.Equal(t, "cookie-csrf", token)
}

func TestFetchCSRFToken_FailureIsNonFatal(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	assert.Empty(t, client.FetchCSRFToken(context.Background()))
}

func TestDo_CSRFHeaderAttached(t *testing.T) {
	var gotCSRF string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCSRF = r.Header.Get("X-CSRFToken")
		writeJSON(w, http.StatusOK, map[string]any{})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.setCSRF("csrf-abc")

	_, err := client.Do(context.Background(), http.MethodPost, "/api/clients/", &Options{Body: map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, "csrf-abc", gotCSRF)
}

func TestDo_NetworkErrorKind(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")

	_, err := client.Do(context.Background(), http.MethodGet, "/api/clients/", nil)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNetwork))
}

func TestDo_BinaryResponsePassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.Do(context.Background(), http.MethodGet, "/api/reports/1/download/", nil)
	require.NoError(t, err)
	assert.False(t, resp.IsJSON())
	assert.Equal(t, []byte("%PDF-1.7 fake"), resp.Body)
}

func TestTokenExpiresWithin(t *testing.T) {
	makeToken := func(exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": exp.Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return signed
	}

	client := newTestClient(t, "http://127.0.0.1:1")

	client.mu.Lock()
	client.session.Access = makeToken(time.Now().Add(time.Hour))
	client.mu.Unlock()
	assert.False(t, client.TokenExpiresWithin(time.Minute))
	assert.True(t, client.TokenExpiresWithin(2*time.Hour))

	client.mu.Lock()
	client.session.Access = "not-a-jwt"
	client.mu.Unlock()
	assert.False(t, client.TokenExpiresWithin(time.Minute), "unparseable tokens are assumed valid")

	client.mu.Lock()
	client.session.Access = ""
	client.mu.Unlock()
	assert.True(t, client.TokenExpiresWithin(time.Minute))
}
