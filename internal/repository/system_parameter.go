package repository

import (
	"context"

	apperrors "github.com/bms-digital/user-service/internal/errors"
	"github.com/bms-digital/user-service/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SystemParameterRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSystemParameterRepository(db *gorm.DB, logger *zap.Logger) *SystemParameterRepository {
	return &SystemParameterRepository{db: db, logger: logger}
}

// GetAll reads every parameter row in a single query. The cache layer decides
// which keys it recognizes; this repository does not filter.
func (r *SystemParameterRepository) GetAll(ctx context.Context) ([]model.SystemParameter, error) {
	var params []model.SystemParameter

	if err := r.db.WithContext(ctx).Find(&params).Error; err != nil {
		r.logger.Error("Failed to load system parameters", zap.Error(err))
		return nil, apperrors.FromPostgres(err)
	}

	return params, nil
}
