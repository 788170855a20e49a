package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/breathehq/breathe/internal/api/service"
	"github.com/breathehq/breathe/internal/api/store/drivers/sqlite"
	"github.com/breathehq/breathe/pkg/jwtx"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens := jwtx.NewHS256("test-secret")
	accounts := &service.AccountService{Store: st, Signer: tokens}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(tokens, "test", "http://frontend.test", st, logger)
	router.AccountService = accounts
	router.ProfileService = &service.ProfileService{Store: st}
	router.CustomerService = &service.CustomerService{Store: st}
	router.SettingsService = &service.SettingsService{Store: st}
	router.BookmarkService = &service.BookmarkService{Store: st}
	router.ScreenTimeService = &service.ScreenTimeService{Store: st}
	router.ImprovementService = &service.ImprovementService{Store: st}
	router.DeviceService = &service.DeviceService{Store: st}
	router.BillingService = &service.BillingService{Store: st, PlanID: "price_test"}
	router.OAuthService = service.NewOAuthService(st, accounts, "cid", "secret", "http://localhost/cb")
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, Envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var env Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func signupAndLogin(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/signup", "", map[string]string{
		"firstName": "Test", "lastName": "User",
		"email": email, "password": "pass-word-123",
		"companyName": "Acme",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/login", "", map[string]string{
		"email": email, "password": "pass-word-123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, env.Token)
	return env.Token
}

func TestSignupLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	t.Run("signup creates and second signup conflicts", func(t *testing.T) {
		body := map[string]string{
			"firstName": "Ada", "lastName": "Lovelace",
			"email": "ada@flow.test", "password": "pass-word-123",
		}
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/signup", "", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, env := doJSON(t, http.MethodPost, srv.URL+"/signup", "", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Account with email already exists", env.Message)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/signup", "", map[string]string{"email": "x@y.test"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("login failures", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/login", "",
			map[string]string{"email": "nobody@flow.test", "password": "x"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Account with email does not exist", env.Message)

		resp, env = doJSON(t, http.MethodPost, srv.URL+"/login", "",
			map[string]string{"email": "ada@flow.test", "password": "incorrect"})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Wrong password", env.Message)
	})

	t.Run("token opens guarded routes", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/login", "",
			map[string]string{"email": "ada@flow.test", "password": "pass-word-123"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, me := doJSON(t, http.MethodGet, srv.URL+"/me", env.Token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, me.Success)
	})
}

func TestAuthGuard(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/me", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Unauthorized", env.Message)
	})

	t.Run("token without bearer prefix", func(t *testing.T) {
		token := signupAndLogin(t, srv, "guard@flow.test")

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/me", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", token) // no "Bearer "
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/me", "not.a.jwt", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestTenantUserBatches(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv, "owner@batch.test")

	t.Run("empty batch", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/customer/add-user", token,
			map[string]any{"users": []any{}})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "No users to add", env.Message)
	})

	t.Run("mixed batch", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/customer/add-user", token,
			map[string]any{"users": []map[string]string{
				{"firstName": "A", "lastName": "One", "email": "a@batch.test"},
				{"firstName": "Owner", "lastName": "Dup", "email": "owner@batch.test"},
			}})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var out addUsersResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Len(t, out.Created, 1)
		require.Equal(t, []string{"owner@batch.test"}, out.ExistingAccounts)
		require.Empty(t, out.Failed)
	})

	t.Run("all existing", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/customer/add-user", token,
			map[string]any{"users": []map[string]string{
				{"email": "a@batch.test"},
				{"email": "owner@batch.test"},
			}})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var out addUsersResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Empty(t, out.Created)
		require.ElementsMatch(t, []string{"a@batch.test", "owner@batch.test"}, out.ExistingAccounts)
	})

	t.Run("list sees the tenant", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/customer/users", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var users []UserResponse
		require.NoError(t, json.Unmarshal(raw, &users))
		require.Len(t, users, 2)
	})
}

func TestSettingsRoutes(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv, "settings@routes.test")

	t.Run("get bootstraps defaults", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/breaks-settings", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Equal(t, float64(60), out["frequencyMinutes"])
	})

	t.Run("put updates the partition", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPut, srv.URL+"/breaks-settings", token,
			map[string]any{"setting": map[string]any{
				"enabled": true, "frequencyMinutes": 30, "durationMinutes": 5, "soundOn": false,
			}})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Equal(t, float64(30), out["frequencyMinutes"])
	})

	t.Run("put without setting degrades to read", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPut, srv.URL+"/breaks-settings", token, map[string]any{})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Equal(t, float64(30), out["frequencyMinutes"])
	})

	t.Run("colors list seeds fallback palette", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/colors", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var out colorListResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Equal(t, service.FallbackPalette, out.Colors)
	})
}

func TestActivityRoutes(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv, "activity@routes.test")

	t.Run("screentime round trip", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPut, srv.URL+"/screentime", token,
			map[string]any{"date": "2026-08-30", "screenTime": map[string]int{"09:00": 12}})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var out map[string]map[string]int
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Equal(t, map[string]int{"09:00": 12}, out["2026-08-30"])
	})

	t.Run("today bootstraps", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/screentime/today", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var out map[string]map[string]int
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Len(t, out, 1)
	})

	t.Run("bookmarks append", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPut, srv.URL+"/user/bookmarks", token,
			map[string]any{"bookmarks": []string{"c1", "c2"}})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var out bookmarksResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Equal(t, []string{"c1", "c2"}, out.Bookmarks)
	})

	t.Run("break event and analytics", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/browser-extension/event/break", token,
			map[string]any{"completed": true, "rating": 4})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var out breakEventResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		require.NotEmpty(t, out.ContentID)

		resp, env = doJSON(t, http.MethodGet, srv.URL+"/browser-extension/analytics", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err = json.Marshal(env.Data)
		require.NoError(t, err)
		var analytics analyticsResponse
		require.NoError(t, json.Unmarshal(raw, &analytics))
		require.Equal(t, 1, analytics.TotalBreaks)
	})
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t)

	t.Run("root banner", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "Server is running", string(body))
	})

	t.Run("livez and readyz", func(t *testing.T) {
		for _, path := range []string{"/livez", "/readyz"} {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
	})

	t.Run("webhook rejects bad signature", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, srv.URL+"/stripe-webhook", "",
			map[string]any{"type": "checkout.session.completed"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Invalid signature", env.Message)
	})

	t.Run("oauth provider routes", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/thirdparty/google", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		var out redirectResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		require.Contains(t, out.RedirectURL, "accounts.google.com")

		resp, env = doJSON(t, http.MethodGet, srv.URL+"/thirdparty/facebook", "", nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Unknown provider", env.Message)
	})
}
