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

type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewUserRepository(db *gorm.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	start := time.Now()
	var user model.User

	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by ID",
			zap.String("user_id", userID),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, apperrors.FromPostgres(err)
	}

	r.logger.Debug("User retrieved",
		zap.String("user_id", userID),
		zap.Duration("duration", time.Since(start)),
	)

	return &user, nil
}

// Create inserts a new user row
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	start := time.Now()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		r.logger.Error("Failed to create user",
			zap.String("user_id", user.UserID),
			zap.String("email", user.Email),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return apperrors.FromPostgres(err)
	}

	r.logger.Info("User created",
		zap.String("user_id", user.UserID),
		zap.String("email", user.Email),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}

// Update applies a partial column update and returns the resulting row.
func (r *UserRepository) Update(ctx context.Context, userID string, fields map[string]interface{}) (*model.User, error) {
	start := time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if result.Error != nil {
		r.logger.Error("Failed to update user",
			zap.String("user_id", userID),
			zap.Duration("duration", time.Since(start)),
			zap.Error(result.Error),
		)
		return nil, apperrors.FromPostgres(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	r.logger.Info("User updated",
		zap.String("user_id", userID),
		zap.Int64("rows_affected", result.RowsAffected),
		zap.Duration("duration", time.Since(start)),
	)

	return r.GetByID(ctx, userID)
}

// UpdatePassword updates user password
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", userID).
		Update("password", password)
	if result.Error != nil {
		r.logger.Error("Failed to update user password",
			zap.String("user_id", userID),
			zap.Error(result.Error),
		)
		return apperrors.FromPostgres(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}

	r.logger.Info("User password updated", zap.String("user_id", userID))

	return nil
}

// Delete removes a user row permanently
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.User{})
	if result.Error != nil {
		r.logger.Error("Failed to delete user",
			zap.String("user_id", userID),
			zap.Error(result.Error),
		)
		return apperrors.FromPostgres(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}

	r.logger.Info("User deleted", zap.String("user_id", userID))

	return nil
}

// CreateHistory appends an audit snapshot of the user's current row. Called
// before the corresponding mutation so the snapshot reflects the prior state.
func (r *UserRepository) CreateHistory(ctx context.Context, userID, action string) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	snapshot := model.SnapshotOf(user, action)
	if err := r.db.WithContext(ctx).Create(snapshot).Error; err != nil {
		r.logger.Error("Failed to write user history",
			zap.String("user_id", userID),
			zap.String("action", action),
			zap.Error(err),
		)
		return apperrors.FromPostgres(err)
	}

	r.logger.Debug("User history recorded",
		zap.String("user_id", userID),
		zap.String("action", action),
	)

	return nil
}
