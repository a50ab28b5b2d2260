package auth

import (
	"time"

	"didilikeit/config"
	"didilikeit/internal/domain/service"
	"didilikeit/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionTokenType = "session"

// ErrInvalidSessionToken is returned for tokens that fail signature, expiry or shape checks.
var ErrInvalidSessionToken = errors.New("invalid session token")

// sessionClaims names a server-side session; nothing else about the user is in the cookie.
type sessionClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.Session.Secret),
		issuer: cfg.Env.ServiceName,
		now:    time.Now,
	}, nil
}

// IssueSessionToken signs an HS256 token whose subject is the session ID.
func (s *jwtService) IssueSessionToken(sessionID uuid.UUID, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		Type: sessionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return token, nil
}

// ParseSessionToken verifies the token and returns the session ID it names.
func (s *jwtService) ParseSessionToken(tokenString string) (uuid.UUID, error) {
	var claims sessionClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrInvalidSessionToken, err.Error())
	}

	if claims.Type != sessionTokenType {
		return uuid.Nil, errors.Wrap(ErrInvalidSessionToken, "unexpected token type")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrInvalidSessionToken, "subject is not a session id")
	}

	return id, nil
}
