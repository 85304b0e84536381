// Package authstub is an in-memory auth backend for local development and
// tests. It serves /auth/login and /auth/register with the same wire format as
// the real application API.
package authstub

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type user struct {
	ID           string
	Email        string
	PasswordHash []byte
}

// Server holds registered users and issued tokens
type Server struct {
	mu     sync.RWMutex
	users  map[string]user // by lowercased email
	tokens map[string]string

	cost   int
	logger *slog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithBcryptCost overrides the password hashing cost
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.cost = cost }
}

// WithLogger sets the server logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates an empty stub backend
func New(opts ...Option) *Server {
	s := &Server{
		users:  make(map[string]user),
		tokens: make(map[string]string),
		cost:   bcrypt.DefaultCost,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user and returns a fresh token
func (s *Server) Register(email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}

	key := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[key]; exists {
		return "", ErrEmailTaken
	}

	u := user{ID: uuid.NewString(), Email: email, PasswordHash: hash}
	s.users[key] = u
	return s.issue(u.ID), nil
}

// Login checks the password and returns a fresh token
func (s *Server) Login(email, password string) (string, error) {
	s.mu.RLock()
	u, ok := s.users[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issue(u.ID), nil
}

// UserForToken returns the user id a token was issued to
func (s *Server) UserForToken(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	return id, ok
}

// issue must be called with mu held
func (s *Server) issue(userID string) string {
	token := uuid.NewString()
	s.tokens[token] = userID
	return token
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r credentialsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(1, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 128)),
	)
}

// Router returns the gin engine serving the auth endpoints
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	auth := router.Group("/auth")
	{
		auth.POST("/register", s.handleRegister)
		auth.POST("/login", s.handleLogin)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func (s *Server) bind(c *gin.Context) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return req, false
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": err})
		return req, false
	}
	return req, true
}

func (s *Server) handleRegister(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}

	token, err := s.Register(req.Email, req.Password)
	switch {
	case errors.Is(err, ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		return
	case err != nil:
		s.logger.Error("register failed", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	s.logger.Info("user registered", "email", req.Email)
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func (s *Server) handleLogin(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}

	token, err := s.Login(req.Email, req.Password)
	if err != nil {
		s.logger.Info("login rejected", "email", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
