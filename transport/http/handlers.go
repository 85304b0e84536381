package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/service"
	"github.com/layer-3/inkgate/transport/client"
)

// invalidFormMessage is shown when the form itself is incomplete
const invalidFormMessage = "Enter a valid email and password"

// RegisterPath serves the registration form
const RegisterPath = "/register"

// AuthHandlers contains HTTP handlers for the web companion
type AuthHandlers struct {
	authService *service.AuthService
	api         *client.Client
	loginPath   string
	logger      *slog.Logger
}

// NewAuthHandlers creates new web handlers. api may be nil, which disables
// the /app/api proxy.
func NewAuthHandlers(authService *service.AuthService, api *client.Client, loginPath string, logger *slog.Logger) *AuthHandlers {
	if loginPath == "" {
		loginPath = service.DefaultLoginPath
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandlers{
		authService: authService,
		api:         api,
		loginPath:   loginPath,
		logger:      logger,
	}
}

type credentialsForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f credentialsForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Password, validation.Required),
	)
}

type formView struct {
	Flow         core.FlowKind
	Title        string
	Action       string
	LoginPath    string
	RegisterPath string
	Email        string
	Error        string
}

func (h *AuthHandlers) newFormView(kind core.FlowKind) formView {
	v := formView{
		Flow:         kind,
		Title:        "Sign in",
		Action:       h.loginPath,
		LoginPath:    h.loginPath,
		RegisterPath: RegisterPath,
	}
	if kind == core.FlowRegister {
		v.Title = "Create account"
		v.Action = RegisterPath
	}
	return v
}

// redirectNavigator turns the flow's navigation into a 303 response
type redirectNavigator struct {
	c *gin.Context
}

func (n redirectNavigator) Navigate(_ context.Context, to string) error {
	n.c.Redirect(http.StatusSeeOther, to)
	return nil
}

// LoginForm renders the sign-in form
func (h *AuthHandlers) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", h.newFormView(core.FlowLogin))
}

// RegisterForm renders the registration form
func (h *AuthHandlers) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", h.newFormView(core.FlowRegister))
}

// Login handles the sign-in form submission
func (h *AuthHandlers) Login(c *gin.Context) {
	h.submit(c, core.FlowLogin)
}

// Register handles the registration form submission
func (h *AuthHandlers) Register(c *gin.Context) {
	h.submit(c, core.FlowRegister)
}

func (h *AuthHandlers) submit(c *gin.Context, kind core.FlowKind) {
	view := h.newFormView(kind)

	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		view.Error = invalidFormMessage
		c.HTML(http.StatusOK, "form.html", view)
		return
	}
	view.Email = form.Email

	if err := form.Validate(); err != nil {
		view.Error = invalidFormMessage
		c.HTML(http.StatusOK, "form.html", view)
		return
	}

	creds := core.Credentials{Email: form.Email, Password: form.Password}
	err := h.authService.NewFlow(kind).Submit(c.Request.Context(), creds, redirectNavigator{c: c})
	if err != nil {
		var authErr *core.AuthError
		if errors.As(err, &authErr) {
			view.Error = authErr.Message
		} else {
			view.Error = kind.DefaultMessage()
		}
		c.HTML(http.StatusOK, "form.html", view)
	}
}

// Logout clears the stored token and returns to the sign-in page
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		h.logger.Error("logout failed", "error", err)
		c.String(http.StatusInternalServerError, "Failed to logout")
		return
	}

	c.Redirect(http.StatusSeeOther, h.loginPath)
}

// Dashboard renders the protected landing page
func (h *AuthHandlers) Dashboard(c *gin.Context) {
	state, _ := AuthState(c)

	apiURL := ""
	if h.api != nil {
		apiURL = h.api.BaseURL()
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Authenticated": state.IsAuthenticated,
		"APIBaseURL":    apiURL,
	})
}

// Proxy forwards GET /app/api/*path to the application API with the bearer token attached
func (h *AuthHandlers) Proxy(c *gin.Context) {
	if h.api == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "API proxy disabled"})
		return
	}

	path := c.Param("path")
	if c.Request.URL.RawQuery != "" {
		path += "?" + c.Request.URL.RawQuery
	}

	resp, err := h.api.Get(c.Request.Context(), path)
	if err != nil {
		h.logger.Warn("api proxy request failed", "path", path, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "API unreachable"})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to read API response"})
		return
	}

	c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), body)
}

// Health reports liveness
func (h *AuthHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
