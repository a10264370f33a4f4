package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/bms-digital/user-service/internal/constants"
	"github.com/bms-digital/user-service/internal/dto"
	apperrors "github.com/bms-digital/user-service/internal/errors"
	"github.com/bms-digital/user-service/internal/model"
	"github.com/bms-digital/user-service/pkg/redis"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

const (
	oneTimePasswordLength  = 8
	oneTimePasswordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()_+{}|:<>?-=[];,./"

	userCacheTTL = 5 * time.Minute
)

type UserService struct {
	users  UserStore
	tokens *TokenService
	system *SystemCache
	cache  redis.Client
	logger *zap.Logger
}

func NewUserService(users UserStore, tokens *TokenService, system *SystemCache, cache redis.Client, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		system: system,
		cache:  cache,
		logger: logger,
	}
}

// CreateUser registers a new user with a server-generated one-time password.
// The password is hashed only when the system flag requires it, and echoed in
// the response only when SendPasswordInResp allows it.
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	flags := s.system.Flags()

	password, err := generateOneTimePassword(oneTimePasswordLength)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	stored := password
	s.logger.Info("Creating user",
		zap.String("user_id", req.UserID),
		zap.Bool("password_hashing_required", flags.PasswordHashingRequired),
	)
	if flags.PasswordHashingRequired {
		stored, err = hashPassword(password)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	isAllowed := req.IsAllowed
	if isAllowed == "" {
		isAllowed = "Y"
	}

	user := &model.User{
		UserID:      req.UserID,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Gender:      req.Gender,
		CountryCode: req.CountryCode,
		StateCode:   req.StateCode,
		CityName:    req.CityName,
		RoleID:      req.RoleID,
		IsAllowed:   isAllowed,
		Password:    stored,
	}
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrCheckConstraint, err)
		}
		user.DOB = datatypes.Date(dob)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserResponse(user, flags.SendPasswordInResp), nil
}

// GetUser reads a user, serving repeat lookups from the redis cache.
func (s *UserService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	flags := s.system.Flags()
	key := userCacheKey(userID)

	var cached model.User
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		s.logger.Debug("User served from cache", zap.String("user_id", userID))
		return toUserResponse(&cached, flags.SendPasswordInResp), nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, user, userCacheTTL); err != nil {
		// Cache failures never fail the read
		s.logger.Warn("Failed to cache user", zap.String("user_id", userID), zap.Error(err))
	}

	return toUserResponse(user, flags.SendPasswordInResp), nil
}

// UpdateUser applies a partial update, recording an audit snapshot first when
// the history flag is on.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	fields, err := updateFields(req)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	flags := s.system.Flags()
	if flags.CreateUserHistory {
		if err := s.users.CreateHistory(ctx, userID, model.ActionUpdate); err != nil {
			return nil, err
		}
	}

	user, err := s.users.Update(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)

	return toUserResponse(user, flags.SendPasswordInResp), nil
}

// UpdatePassword replaces the user's password, hashing per the system flag.
func (s *UserService) UpdatePassword(ctx context.Context, userID string, req *dto.UpdatePasswordRequest) error {
	flags := s.system.Flags()

	password := req.NewPassword
	s.logger.Info("Updating password",
		zap.String("user_id", userID),
		zap.Bool("password_hashing_required", flags.PasswordHashingRequired),
	)
	if flags.PasswordHashingRequired {
		var err error
		password, err = hashPassword(password)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	if flags.CreateUserHistory {
		if err := s.users.CreateHistory(ctx, userID, model.ActionUpdate); err != nil {
			return err
		}
	}

	if err := s.users.UpdatePassword(ctx, userID, password); err != nil {
		return err
	}

	s.invalidate(ctx, userID)

	return nil
}

// DeleteUser removes the user, snapshotting the row first when history is on.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if s.system.Flags().CreateUserHistory {
		if err := s.users.CreateHistory(ctx, userID, model.ActionDelete); err != nil {
			return err
		}
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)

	return nil
}

// Login verifies credentials and issues a token plus a session row. Lookup
// failures and bad passwords collapse into the same rejection so callers
// cannot probe for valid user IDs.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.IsAllowed != "Y" {
		s.logger.Warn("Blocked user attempted login", zap.String("user_id", user.UserID))
		return nil, apperrors.ErrUserBlocked
	}

	if !s.checkPassword(user.Password, req.Password) {
		s.logger.Warn("Login failed: wrong password", zap.String("user_id", user.UserID))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	flags := s.system.Flags()
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int(s.tokens.Validity().Seconds()),
		User:      *toUserResponse(user, flags.SendPasswordInResp),
	}, nil
}

func (s *UserService) checkPassword(stored, presented string) bool {
	if s.system.Flags().PasswordHashingRequired {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}
	return stored == presented
}

func (s *UserService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, userCacheKey(userID)); err != nil {
		s.logger.Warn("Failed to invalidate user cache",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func userCacheKey(userID string) string {
	return constants.CacheKeyUser + userID
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateOneTimePassword(length int) (string, error) {
	max := big.NewInt(int64(len(oneTimePasswordCharset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = oneTimePasswordCharset[n.Int64()]
	}
	return string(out), nil
}

func updateFields(req *dto.UpdateUserRequest) (map[string]interface{}, error) {
	fields := make(map[string]interface{})

	setString := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}

	setString("first_name", req.FirstName)
	setString("middle_name", req.MiddleName)
	setString("last_name", req.LastName)
	setString("email", req.Email)
	setString("phone", req.Phone)
	setString("gender", req.Gender)
	setString("country_code", req.CountryCode)
	setString("state_code", req.StateCode)
	setString("city_name", req.CityName)
	setString("role_id", req.RoleID)
	setString("is_allowed", req.IsAllowed)

	if req.DOB != nil {
		dob, err := time.Parse("2006-01-02", *req.DOB)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrCheckConstraint, err)
		}
		fields["dob"] = datatypes.Date(dob)
	}

	return fields, nil
}

func toUserResponse(user *model.User, includePassword bool) *dto.UserResponse {
	resp := &dto.UserResponse{
		UserID:      user.UserID,
		FirstName:   user.FirstName,
		MiddleName:  user.MiddleName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		Gender:      user.Gender,
		CountryCode: user.CountryCode,
		StateCode:   user.StateCode,
		CityName:    user.CityName,
		RoleID:      user.RoleID,
		IsAllowed:   user.IsAllowed,
	}

	if dob := time.Time(user.DOB); !dob.IsZero() {
		resp.DOB = dob.Format("2006-01-02")
	}
	if includePassword {
		resp.Password = user.Password
	}

	return resp
}
