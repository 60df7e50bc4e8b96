package auth

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayush/members-site/internal/models"
)

var (
	homeAnonTmpl = template.Must(template.New("home_anon").Parse(
		`<h1>Welcome!</h1>
<p><a href="/signup">Sign Up</a> | <a href="/login">Login</a></p>
`))

	homeUserTmpl = template.Must(template.New("home_user").Parse(
		`<h1>Hello, {{.Username}}!</h1>
<p><a href="/members">Go to Members Page</a> | <a href="/logout">Logout</a></p>
`))

	signupTmpl = template.Must(template.New("signup").Parse(
		`<h1>Sign Up</h1>
<form action="/signup" method="POST">
    Name: <input name="name" required />
    Email: <input name="email" type="email" required />
    Password: <input name="password" type="password" required />
    <button type="submit">Register</button>
</form>
`))

	loginTmpl = template.Must(template.New("login").Parse(
		`<h1>Login</h1>
<form method="POST" action="/login">
    Email: <input name="email" type="email" required /><br>
    Password: <input name="password" type="password" required /><br>
    <button type="submit">Log In</button>
</form>
<p><a href="/signup">Don't have an account? Sign up</a></p>
`))

	membersTmpl = template.Must(template.New("members").Parse(
		`<h1>Welcome, {{.Username}}!</h1>
<p><a href="/logout">Logout</a></p>
<img src="/images/{{.Image}}" style="max-width: 300px; height: auto;" alt="Random image">
`))

	flowErrorTmpl = template.Must(template.New("flow_error").Parse(
		`<p>{{.Message}}</p><a href="{{.BackHref}}">{{.BackText}}</a>
`))
)

const (
	internalErrorBody = "Internal server error. Check server logs."
	notFoundBody      = `<h1>404 - Page Not Found</h1>
<p>Sorry, the page you are looking for does not exist.</p>
<a href="/">Back to Home</a>
`
)

// Handler holds the site's HTTP handlers.
type Handler struct {
	svc    *Service
	signer *CookieSigner
	log    zerolog.Logger
}

func NewHandler(svc *Service, signer *CookieSigner, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, signer: signer, log: log}
}

// Home renders the public or authenticated landing page per session state.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if username == "" {
		_ = homeAnonTmpl.Execute(w, nil)
		return
	}
	_ = homeUserTmpl.Execute(w, map[string]string{"Username": username})
}

// SignupPage renders the registration form.
func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = signupTmpl.Execute(w, nil)
}

// Signup runs the register flow for a form submission.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := models.RegisterForm{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	sid, err := h.svc.Register(r.Context(), form)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			h.renderFlowError(w, "Validation error: "+ve.Message, "/signup", "Back")
		case errors.Is(err, ErrEmailTaken):
			h.renderFlowError(w, "Email already registered. Try logging in.", "/login", "Login")
		default:
			h.internalError(w, err, "signup failed")
		}
		return
	}

	h.setSessionCookie(w, sid)
	http.Redirect(w, r, "/members", http.StatusFound)
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = loginTmpl.Execute(w, nil)
}

// Login runs the login flow for a form submission.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := models.LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	sid, err := h.svc.Login(r.Context(), form)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			h.renderFlowError(w, "Invalid input: "+ve.Message, "/login", "Back to login")
		case errors.Is(err, ErrUserNotFound):
			h.renderFlowError(w, "User not found.", "/login", "Try again")
		case errors.Is(err, ErrWrongPassword):
			h.renderFlowError(w, "Incorrect password.", "/login", "Try again")
		default:
			h.internalError(w, err, "login failed")
		}
		return
	}

	h.setSessionCookie(w, sid)
	http.Redirect(w, r, "/members", http.StatusFound)
}

// Members renders the protected page with one random image. RequireAuth has
// already redirected anonymous requests.
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	image, err := h.svc.MembersImage()
	if err != nil {
		h.internalError(w, err, "members image pick failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = membersTmpl.Execute(w, map[string]string{
		"Username": UsernameFromContext(r.Context()),
		"Image":    image,
	})
}

// Logout destroys the session and clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if sid, ok := h.signer.Verify(cookie.Value); ok {
			if err := h.svc.Logout(r.Context(), sid); err != nil {
				h.log.Err(err).Msg("logout failed")
				http.Error(w, "Error logging out", http.StatusInternalServerError)
				return
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// NotFound serves the fixed 404 page for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(notFoundBody))
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    h.signer.Sign(sid),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})
}

func (h *Handler) renderFlowError(w http.ResponseWriter, message, backHref, backText string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = flowErrorTmpl.Execute(w, map[string]string{
		"Message":  message,
		"BackHref": backHref,
		"BackText": backText,
	})
}

func (h *Handler) internalError(w http.ResponseWriter, err error, msg string) {
	h.log.Err(err).Msg(msg)
	http.Error(w, internalErrorBody, http.StatusInternalServerError)
}
