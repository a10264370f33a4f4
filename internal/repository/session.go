package repository

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/bms-digital/user-service/internal/errors"
	"github.com/bms-digital/user-service/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionValidity is the fixed window between token issuance and session expiry.
const SessionValidity = time.Hour

type SessionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSessionRepository(db *gorm.DB, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{db: db, logger: logger}
}

// Create inserts a new session row for the issued token. Multiple live
// sessions per user are allowed; older rows are not touched.
func (r *SessionRepository) Create(ctx context.Context, userID, token string) (*model.Session, error) {
	session := &model.Session{
		UserID:      userID,
		Token:       token,
		SessionTime: time.Now().Add(SessionValidity),
		IsExpired:   false,
	}

	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		r.logger.Error("Failed to create session",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, apperrors.FromPostgres(err)
	}

	r.logger.Info("Session created",
		zap.String("user_id", userID),
		zap.Uint("session_id", session.SessionID),
		zap.Time("session_time", session.SessionTime),
	)

	return session, nil
}

// FindByUserAndToken returns the newest session for the exact (user_id, token)
// pair, or (nil, nil) when no such session was ever recorded. Storage failures
// are reported as storage errors, never as a missing session.
func (r *SessionRepository) FindByUserAndToken(ctx context.Context, userID, token string) (*model.Session, error) {
	var session model.Session

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Order("session_id DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to look up session",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, apperrors.FromPostgres(err)
	}

	return &session, nil
}

// Latest returns the most recent session for the user regardless of token,
// or (nil, nil) when the user has never logged in.
func (r *SessionRepository) Latest(ctx context.Context, userID string) (*model.Session, error) {
	var session model.Session

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("session_id DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to fetch latest session",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, apperrors.FromPostgres(err)
	}

	return &session, nil
}

// Expire flags a session as expired. The flag is sticky and the update is
// idempotent, so concurrent calls against the same row are safe.
func (r *SessionRepository) Expire(ctx context.Context, sessionID uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("session_id = ?", sessionID).
		Update("is_expired", true)
	if result.Error != nil {
		r.logger.Error("Failed to expire session",
			zap.Uint("session_id", sessionID),
			zap.Error(result.Error),
		)
		return apperrors.FromPostgres(result.Error)
	}

	r.logger.Debug("Session expired",
		zap.Uint("session_id", sessionID),
		zap.Int64("rows_affected", result.RowsAffected),
	)

	return nil
}
