package main

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminTokenExpiry = 12 * time.Hour
	loginRateWindow  = 60 * time.Second
	maxLoginAttempts = 10
)

// AdminAuth guards the admin metrics surface: a single bcrypt-hashed
// credential from config, exchanged for a short-lived HS256 token.
// The signing secret is generated per process; restarting the server
// invalidates outstanding tokens.
type AdminAuth struct {
	passHash  string
	jwtSecret []byte

	// Rate limiting for login attempts (IP -> attempts)
	rateMu  sync.Mutex
	rateMap map[string]*rateEntry
}

type rateEntry struct {
	Count   int
	ResetAt time.Time
}

// NewAdminAuth creates an AdminAuth. An empty passHash disables logins.
func NewAdminAuth(passHash string) *AdminAuth {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("failed to generate admin token secret: " + err.Error())
	}
	return &AdminAuth{
		passHash:  passHash,
		jwtSecret: secret,
		rateMap:   make(map[string]*rateEntry),
	}
}

// Login verifies the admin password and returns a bearer token
func (a *AdminAuth) Login(password, ip string) (string, error) {
	if a.passHash == "" {
		return "", fmt.Errorf("admin access disabled")
	}
	if !a.checkRate(ip) {
		return "", fmt.Errorf("too many login attempts, try again later")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.passHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid password")
	}

	claims := jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(adminTokenExpiry).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateToken checks an admin bearer token
func (a *AdminAuth) ValidateToken(tokenStr string) error {
	if tokenStr == "" {
		return fmt.Errorf("missing token")
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}

func (a *AdminAuth) checkRate(ip string) bool {
	a.rateMu.Lock()
	defer a.rateMu.Unlock()

	now := time.Now()
	entry, ok := a.rateMap[ip]
	if !ok || now.After(entry.ResetAt) {
		a.rateMap[ip] = &rateEntry{Count: 1, ResetAt: now.Add(loginRateWindow)}
		return true
	}
	entry.Count++
	return entry.Count <= maxLoginAttempts
}
