package stubapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"recruitflow-go/internal/platform/errors"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 24 * time.Hour
)

type tokenIssuer struct {
	secret []byte
}

func (t *tokenIssuer) issue(subject, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        subject,
		"token_type": tokenType,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(errors.KindAuth, "issue_token", "sign "+tokenType+" token", err)
	}
	return signed, nil
}

// verify checks signature and expiry and returns the subject when the
// token is of the expected type.
func (t *tokenIssuer) verify(raw, wantType string) (string, error) {
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(errors.KindAuth, "verify_token", "unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return "", errors.Wrap(errors.KindAuth, "verify_token", "parse token", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", errors.New(errors.KindAuth, "verify_token", "invalid claims")
	}
	if tokenType, _ := claims["token_type"].(string); tokenType != wantType {
		return "", errors.New(errors.KindAuth, "verify_token", "wrong token type")
	}
	subject, _ := claims["sub"].(string)
	return subject, nil
}
