package auth_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ayush/members-site/internal/auth"
	"github.com/ayush/members-site/internal/gallery"
	"github.com/ayush/members-site/internal/middleware"
)

var testImages = []string{"cat.jpg", "dog.png", "fish.gif"}

func newTestServer(t *testing.T, imageDir string) *httptest.Server {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	sessions := auth.NewSessionStore(rdb)
	signer := auth.NewCookieSigner("test-secret")
	svc := auth.NewService(newFakeUserStore(), fakeHasher{}, sessions, gallery.New(imageDir))
	h := auth.NewHandler(svc, signer, zerolog.Nop())

	r := chi.NewRouter()
	r.Use(middleware.WithSession(sessions, signer, zerolog.Nop()))
	r.Get("/", h.Home)
	r.Get("/signup", h.SignupPage)
	r.Post("/signup", h.Signup)
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.With(middleware.RequireAuth).Get("/members", h.Members)
	r.Get("/logout", h.Logout)
	r.NotFound(h.NotFound)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func imageDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range testImages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644))
	}
	return dir
}

// newClient returns a cookie-keeping client that does not follow redirects,
// so status codes and Location headers stay observable.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func getBody(t *testing.T, c *http.Client, url string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func signup(t *testing.T, c *http.Client, base, name, email, password string) *http.Response {
	t.Helper()
	resp, err := c.PostForm(base+"/signup", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func login(t *testing.T, c *http.Client, base, email, password string) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(base+"/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHomeAnonymous(t *testing.T) {
	srv := newTestServer(t, imageDir(t))
	c := newClient(t)

	resp, body := getBody(t, c, srv.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Welcome!")
	require.Contains(t, body, `href="/signup"`)
	require.Contains(t, body, `href="/login"`)
}

func TestMembersRedirectsAnonymous(t *testing.T) {
	srv := newTestServer(t, imageDir(t))
	c := newClient(t)

	resp, err := c.Get(srv.URL + "/members")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestSignupFlow(t *testing.T) {
	srv := newTestServer(t, imageDir(t))
	c := newClient(t)

	resp := signup(t, c, srv.URL, "Alice", "alice@example.com", "secret1")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/members", resp.Header.Get("Location"))

	resp, body := getBody(t, c, srv.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Hello, Alice!")

	resp, body = getBody(t, c, srv.URL+"/members")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Welcome, Alice!")

	var shown int
	for _, img := range testImages {
		if strings.Contains(body, `<img src="/images/`+img+`"`) {
			shown++
		}
	}
	require.Equal(t, 1, shown, "exactly one image from the configured set")
}

func TestSignupValidationError(t *testing.T) {
	srv := newTestServer(t, imageDir(t))
	c := newClient(t)

	resp, err := c.PostForm(srv.URL+"/signup", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"short"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Validation error: password must be at least 6 characters")
}

func TestSignupDuplicateEmail(t *testing.T) {
	srv := newTestServer(t, imageDir(t))
	c := newClient(t)

	signup(t, c, srv.URL, "Alice", "alice@example.com", "secret1")

	resp, err := c.PostForm(srv.URL+"/signup", url.Values{
		"name":     {"Impostor"},
		"email":    {"alice@example.com"},
		"password": {"secret2"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Email already registered. Try logging in.")
}

func TestLoginFailures(t *testing.T) {
	srv := newTestServer(t, imageDir(t))
	c := newClient(t)
	signup(t, c, srv.URL, "Alice", "alice@example.com", "secret1")

	resp, body := login(t, newClient(t), srv.URL, "ghost@example.com", "whatever")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "User not found.")

	resp, body = login(t, newClient(t), srv.URL, "alice@example.com", "wrong!!")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Incorrect password.")

	resp, body = login(t, newClient(t), srv.URL, "not-an-email", "whatever")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Invalid input: email must be a valid email")
}

func TestLoginSuccess(t *testing.T) {
	srv := newTestServer(t, imageDir(t))
	signup(t, newClient(t), srv.URL, "Alice", "alice@example.com", "secret1")

	c := newClient(t)
	resp, _ := login(t, c, srv.URL, "alice@example.com", "secret1")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/members", resp.Header.Get("Location"))

	resp, body := getBody(t, c, srv.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Hello, Alice!")
}

func TestLogoutClearsSession(t *testing.T) {
	srv := newTestServer(t, imageDir(t))
	c := newClient(t)
	signup(t, c, srv.URL, "Alice", "alice@example.com", "secret1")

	resp, err := c.Get(srv.URL + "/logout")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	resp, err = c.Get(srv.URL + "/members")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestTamperedCookieIsAnonymous(t *testing.T) {
	srv := newTestServer(t, imageDir(t))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/members", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "forged-session-id.bogus-signature"})

	c := newClient(t)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestMembersEmptyImageSet(t *testing.T) {
	srv := newTestServer(t, t.TempDir())
	c := newClient(t)
	signup(t, c, srv.URL, "Alice", "alice@example.com", "secret1")

	resp, err := c.Get(srv.URL + "/members")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t, imageDir(t))
	c := newClient(t)

	resp, body := getBody(t, c, srv.URL+"/no-such-page")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, body, "404 - Page Not Found")
}
