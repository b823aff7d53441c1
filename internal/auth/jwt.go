package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "session"

// SessionMaxAge matches the original deployment's 5-day session cookies.
const SessionMaxAge = 5 * 24 * time.Hour

// SessionMaxAgeSeconds is SessionMaxAge for cookie Max-Age headers.
const SessionMaxAgeSeconds = int(SessionMaxAge / time.Second)

// SessionUser is the decoded identity behind a valid session token.
type SessionUser struct {
	UID   string
	Email string
	Role  string
}

// GenerateToken creates a signed session token for a user. The role claim
// is whatever the credentials store held at login time, so role edits only
// take effect on the next login.
func GenerateToken(secret []byte, userID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(SessionMaxAge).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a session token string and returns
// the identity it carries.
func ValidateToken(secret []byte, tokenString string) (*SessionUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err // expired, malformed, or bad signature
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("invalid subject claim")
	}

	user := &SessionUser{UID: sub}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = role
	}
	return user, nil
}
