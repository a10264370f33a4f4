package service

import (
	"context"
	"strings"
	"time"

	"github.com/bms-digital/user-service/internal/dto"
	apperrors "github.com/bms-digital/user-service/internal/errors"
	"go.uber.org/zap"
)

// AuthService is the request-time authorization gate. Given the raw bearer
// header it either yields the decoded identity or one of the credential
// rejections; storage failures surface separately so the HTTP boundary can
// tell "you are not authorized" from "we are broken".
type AuthService struct {
	tokens   *TokenService
	sessions SessionStore
	logger   *zap.Logger
}

func NewAuthService(tokens *TokenService, sessions SessionStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

// Authenticate evaluates the rejection states in order, terminal on first
// match:
//
//  1. no token presented            -> ErrMissingToken
//  2. signature/structure invalid   -> ErrInvalidToken
//  3. session past its window       -> ErrSessionTimeout (row flagged expired)
//  4. session already flagged       -> ErrSessionExpired
//  5. otherwise                     -> identity
//
// A token with no matching session row proceeds on the decoded identity
// alone; the session lookup matches the exact (user_id, token) pair so a
// superseded token can never ride on a newer session.
func (s *AuthService) Authenticate(ctx context.Context, bearerHeader string) (*dto.Identity, error) {
	if strings.TrimSpace(bearerHeader) == "" {
		return nil, apperrors.ErrMissingToken
	}

	// A present but malformed header is a credential problem, not a missing
	// one: the empty extracted token fails verification below.
	token := extractBearerToken(bearerHeader)

	identity, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug("Token verification failed", zap.Error(err))
		return nil, err
	}

	session, err := s.sessions.FindByUserAndToken(ctx, identity.UserID, token)
	if err != nil {
		// Infrastructure failure, not a credential problem
		s.logger.Error("Session lookup failed",
			zap.String("user_id", identity.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	if session != nil {
		now := time.Now()

		if session.SessionTime.Before(now) {
			// Lazy expiry: flag the row now so the next presentation of this
			// token sees it already expired. The write must land before the
			// rejection is returned.
			if !session.IsExpired {
				if err := s.sessions.Expire(ctx, session.SessionID); err != nil {
					return nil, err
				}
			}
			s.logger.Info("Session timed out",
				zap.String("user_id", identity.UserID),
				zap.Uint("session_id", session.SessionID),
				zap.Time("session_time", session.SessionTime),
			)
			return nil, apperrors.ErrSessionTimeout
		}

		if session.IsExpired {
			s.logger.Info("Expired session presented",
				zap.String("user_id", identity.UserID),
				zap.Uint("session_id", session.SessionID),
			)
			return nil, apperrors.ErrSessionExpired
		}
	}

	return identity, nil
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
