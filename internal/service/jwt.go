package service

import (
	"context"
	"errors"
	"time"

	"github.com/bms-digital/user-service/internal/dto"
	apperrors "github.com/bms-digital/user-service/internal/errors"
	"github.com/bms-digital/user-service/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenService issues and verifies signed bearer tokens. It is deliberately
// ignorant of session-level expiry: a token can be structurally valid while
// its session row has been invalidated, and that call is the auth gate's.
type TokenService struct {
	secretKey string
	validity  time.Duration
	sessions  SessionStore
	logger    *zap.Logger
}

// NewTokenService wires the signing secret and the session store. An empty
// secret is a configuration error; there is no hardcoded fallback.
func NewTokenService(secretKey string, validity time.Duration, sessions SessionStore, logger *zap.Logger) (*TokenService, error) {
	if secretKey == "" {
		return nil, errors.New("jwt signing secret must not be empty")
	}
	if validity <= 0 {
		validity = time.Hour
	}
	return &TokenService{
		secretKey: secretKey,
		validity:  validity,
		sessions:  sessions,
		logger:    logger,
	}, nil
}

// Validity returns the token lifetime
func (s *TokenService) Validity() time.Duration {
	return s.validity
}

// Issue signs a token bound to the user's identity and role, then records the
// session row. Returns the token string.
func (s *TokenService) Issue(ctx context.Context, user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.UserID,
		"role_id": user.RoleID,
		"exp":     now.Add(s.validity).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		s.logger.Error("Failed to sign token",
			zap.String("user_id", user.UserID),
			zap.Error(err),
		)
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if _, err := s.sessions.Create(ctx, user.UserID, tokenString); err != nil {
		return "", err
	}

	s.logger.Info("Token issued",
		zap.String("user_id", user.UserID),
		zap.String("role_id", user.RoleID),
		zap.Duration("validity", s.validity),
	)

	return tokenString, nil
}

// Verify validates the signature and the structural expiry claim, then
// decodes the embedded identity. Any failure is an invalid-token error.
func (s *TokenService) Verify(tokenString string) (*dto.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, apperrors.ErrInvalidToken
	}
	roleID, _ := claims["role_id"].(string)

	return &dto.Identity{UserID: userID, RoleID: roleID}, nil
}
