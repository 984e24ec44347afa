// Package token issues and verifies the signed access/refresh token pairs
// used for stateless session validation. Verification never touches the
// store: signature and expiry are the whole check.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, expired token. Callers get no finer distinction.
var ErrInvalidToken = errors.New("invalid or expired token")

type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssuePair mints a short-lived access token and a longer-lived refresh
// token for the given user.
func (i *Issuer) IssuePair(userID uuid.UUID) (access string, refresh string, err error) {
	access, err = i.sign(userID, i.accessTTL)
	if err != nil {
		return "", "", err
	}

	refresh, err = i.sign(userID, i.refreshTTL)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// Verify checks signature and expiry and returns the embedded user ID.
func (i *Issuer) Verify(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}

// Refresh verifies a refresh token and mints a brand-new pair for the same
// user. The old refresh token is not invalidated; there is no revocation
// list, it simply runs out its lifetime.
func (i *Issuer) Refresh(refreshToken string) (access string, refresh string, err error) {
	userID, err := i.Verify(refreshToken)
	if err != nil {
		return "", "", err
	}

	return i.IssuePair(userID)
}

func (i *Issuer) sign(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}
