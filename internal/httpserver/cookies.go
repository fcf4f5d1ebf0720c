// internal/httpserver/cookies.go
//
// Session cookie handling.
// The cookie carries an HS256 JWT whose `sid` claim is the session id used
// as the store key. Tokens that are missing, expired, or fail signature
// checks are replaced with a brand-new session; a client can never choose
// its own id.

package httpserver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/hkdf"
)

// HKDF info labels; one secret yields independent keys per purpose.
const (
	keyInfoCookie  = "socops session cookie v1"
	keyInfoGameLog = "socops game log v1"
)

// deriveKey expands secret into a 32-byte key bound to info.
func deriveKey(secret []byte, info string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %q key: %w", info, err)
	}
	return key, nil
}

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

var errNoSID = errors.New("token has no sid")

type sessionCookies struct {
	name   string
	key    []byte
	maxAge time.Duration
	secure bool
	now    func() time.Time
}

// sign returns a token for sid and its expiry.
func (c *sessionCookies) sign(sid string) (string, time.Time, error) {
	now := c.now()
	exp := now.Add(c.maxAge)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(c.key)
	return ss, exp, err
}

// parse validates a token and returns its session id.
func (c *sessionCookies) parse(token string) (string, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return c.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		return "", err
	}
	if claims.SID == "" {
		return "", errNoSID
	}
	return claims.SID, nil
}

// ensure returns the caller's session id, issuing a new cookie when the
// request carries no valid one.
func (c *sessionCookies) ensure(w http.ResponseWriter, r *http.Request) string {
	if ck, err := r.Cookie(c.name); err == nil && ck.Value != "" {
		sid, err := c.parse(ck.Value)
		if err == nil {
			return sid
		}
		hlog.FromRequest(r).Debug().Err(err).Msg("rejecting session cookie")
	}

	sid := uuid.NewString()
	token, exp, err := c.sign(sid)
	if err != nil {
		// The request still gets a working one-off session.
		hlog.FromRequest(r).Error().Err(err).Msg("sign session cookie")
		return sid
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
	return sid
}
