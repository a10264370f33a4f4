package service

import (
	"context"

	"github.com/bms-digital/user-service/internal/model"
)

// Consumer-side interfaces over the repository layer. The gorm repositories
// satisfy them; tests substitute in-memory fakes.

type SessionStore interface {
	Create(ctx context.Context, userID, token string) (*model.Session, error)
	FindByUserAndToken(ctx context.Context, userID, token string) (*model.Session, error)
	Latest(ctx context.Context, userID string) (*model.Session, error)
	Expire(ctx context.Context, sessionID uint) error
}

type UserStore interface {
	GetByID(ctx context.Context, userID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, userID string, fields map[string]interface{}) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, password string) error
	Delete(ctx context.Context, userID string) error
	CreateHistory(ctx context.Context, userID, action string) error
}

type ParameterSource interface {
	GetAll(ctx context.Context) ([]model.SystemParameter, error)
}
