package tokenizer

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/janus-id/janus/core"
)

const AudienceSession = "session:access"

// DefaultSessionTTL is the fixed lifetime of an access token.
const DefaultSessionTTL = time.Hour

// JWTTokenizer implements the Tokenizer interface using HS256 JWTs signed
// with a process-wide secret. The secret is loaded once at startup and not
// rotated at runtime.
type JWTTokenizer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTTokenizer creates a new JWT tokenizer.
func NewJWTTokenizer(secret []byte) *JWTTokenizer {
	return &JWTTokenizer{
		secret: secret,
		ttl:    DefaultSessionTTL,
		now:    time.Now,
	}
}

// WithClock overrides the internal clock, used in tests.
func (j *JWTTokenizer) WithClock(clock func() time.Time) {
	if clock != nil {
		j.now = clock
	}
}

// IssueSessionToken signs an access token carrying the user's identity.
func (j *JWTTokenizer) IssueSessionToken(user *core.User) (string, error) {
	now := j.now()
	claims := SessionTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{AudienceSession},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		Username: user.Username,
		Email:    user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signedToken, nil
}

// VerifySessionToken validates signature, algorithm and expiry, and returns
// the embedded identity claims. All failures collapse into a single
// Unauthorized error.
func (j *JWTTokenizer) VerifySessionToken(tokenStr string) (*core.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithAudience(AudienceSession), jwt.WithTimeFunc(j.now))

	if err != nil {
		return nil, core.Wrap(core.KindUnauthorized, err, "invalid or expired token")
	}

	claims, ok := token.Claims.(*SessionTokenClaims)
	if !ok || !token.Valid {
		return nil, core.Errf(core.KindUnauthorized, "invalid or expired token")
	}

	return &core.SessionClaims{
		UserID:   claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
