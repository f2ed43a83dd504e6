package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"inventario/internal/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the session gate in front of the catalog. It is a
// placeholder, not a security boundary: a single admin credential pair is
// fixed at construction time (defaults admin/admin123) and login is an exact,
// case-sensitive match against it. There is no user store, no retry counter,
// no lockout.
//
// On a successful login the service records the session and issues an HS256
// JWT so HTTP requests can be gated by middleware; Logout unconditionally
// clears the session.
type AuthService struct {
	adminUsername string
	adminPassword []byte // bcrypt hash of the configured password
	jwtSecret     []byte
	tokenDurat    time.Duration

	mu            sync.Mutex
	authenticated bool
	username      string
}

// NewAuthService creates a new AuthService gated by the given credential
// pair. The password is hashed immediately; the plaintext is not retained.
func NewAuthService(adminUsername, adminPassword, jwtSecret string) (*AuthService, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &AuthService{
		adminUsername: adminUsername,
		adminPassword: hashed,
		jwtSecret:     []byte(jwtSecret),
		tokenDurat:    24 * time.Hour,
	}, nil
}

// Login authenticates the credential pair and returns a JWT token on
// success. Both username and password must match exactly, case included;
// anything else fails with models.ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.adminUsername {
		return "", models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.adminPassword, []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"jti":      uuid.New().String(),
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.mu.Lock()
	s.authenticated = true
	s.username = username
	s.mu.Unlock()

	return tokenString, nil
}

// Logout unconditionally clears the authenticated state and username.
// Already-issued tokens are not revoked; the gate only tracks the session.
func (s *AuthService) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.username = ""
	s.mu.Unlock()
}

// CurrentUser returns the logged-in username and whether a session is
// active.
func (s *AuthService) CurrentUser() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username, s.authenticated
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
