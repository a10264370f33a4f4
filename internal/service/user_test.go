package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bms-digital/user-service/internal/dto"
	apperrors "github.com/bms-digital/user-service/internal/errors"
	"github.com/bms-digital/user-service/internal/model"
	"golang.org/x/crypto/bcrypt"
)

type historyRecord struct {
	userID string
	action string
}

// fakeUserStore keeps users in a map and records audit calls in order.
type fakeUserStore struct {
	users   map[string]*model.User
	history []historyRecord

	createErr  error
	historyErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) GetByID(ctx context.Context, userID string) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copy := *user
	return &copy, nil
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	copy := *user
	f.users[user.UserID] = &copy
	return nil
}

func (f *fakeUserStore) Update(ctx context.Context, userID string, fields map[string]interface{}) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if v, ok := fields["first_name"].(string); ok {
		user.FirstName = v
	}
	if v, ok := fields["email"].(string); ok {
		user.Email = v
	}
	if v, ok := fields["is_allowed"].(string); ok {
		user.IsAllowed = v
	}
	copy := *user
	return &copy, nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, userID, password string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = password
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, userID string) error {
	if _, ok := f.users[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeUserStore) CreateHistory(ctx context.Context, userID, action string) error {
	if f.historyErr != nil {
		return f.historyErr
	}
	f.history = append(f.history, historyRecord{userID: userID, action: action})
	return nil
}

// fakeCacheClient implements redis.Client over a plain map of raw values.
type fakeCacheClient struct {
	entries map[string]*model.User
	deleted []string
}

func newFakeCacheClient() *fakeCacheClient {
	return &fakeCacheClient{entries: make(map[string]*model.User)}
}

func (f *fakeCacheClient) Ping(ctx context.Context) error { return nil }
func (f *fakeCacheClient) IsEnabled() bool                { return true }
func (f *fakeCacheClient) Close() error                   { return nil }

func (f *fakeCacheClient) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	user, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	if target, ok := dest.(*model.User); ok {
		*target = *user
	}
	return true, nil
}

func (f *fakeCacheClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if user, ok := value.(*model.User); ok {
		copy := *user
		f.entries[key] = &copy
	}
	return nil
}

func (f *fakeCacheClient) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		f.deleted = append(f.deleted, key)
		delete(f.entries, key)
	}
	return nil
}

func cacheWithFlags(t *testing.T, params ...model.SystemParameter) *SystemCache {
	t.Helper()
	cache := NewSystemCache(&fakeParameterSource{params: params}, setupTestLogger())
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	return cache
}

func newUserFixture(t *testing.T, store *fakeUserStore, system *SystemCache) (*UserService, *fakeSessionStore, *fakeCacheClient) {
	t.Helper()
	sessions := &fakeSessionStore{}
	tokens, err := NewTokenService("secret", time.Hour, sessions, setupTestLogger())
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}
	cache := newFakeCacheClient()
	return NewUserService(store, tokens, system, cache, setupTestLogger()), sessions, cache
}

func createRequest(userID string) *dto.CreateUserRequest {
	return &dto.CreateUserRequest{
		UserID:    userID,
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     userID + "@example.com",
		Phone:     "5550001111",
		Gender:    "F",
		RoleID:    "OPERATOR",
	}
}

func TestCreateUser_PlainPassword(t *testing.T) {
	store := newFakeUserStore()
	system := cacheWithFlags(t,
		param(model.ParamPasswordHashingRequired, "N"),
		param(model.ParamSendPasswordInResp, "Y"),
	)
	svc, _, _ := newUserFixture(t, store, system)

	resp, err := svc.CreateUser(context.Background(), createRequest("U1001"))
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if len(resp.Password) != oneTimePasswordLength {
		t.Errorf("Expected %d character password, got %d", oneTimePasswordLength, len(resp.Password))
	}
	for _, r := range resp.Password {
		if !strings.ContainsRune(oneTimePasswordCharset, r) {
			t.Errorf("Password contains character outside the charset: %q", r)
		}
	}

	stored := store.users["U1001"]
	if stored == nil {
		t.Fatal("User row was not created")
	}
	if stored.Password != resp.Password {
		t.Error("Hashing off: stored password must equal the generated one")
	}
	if stored.IsAllowed != "Y" {
		t.Errorf("Expected is_allowed default Y, got %q", stored.IsAllowed)
	}
}

func TestCreateUser_HashedPassword(t *testing.T) {
	store := newFakeUserStore()
	system := cacheWithFlags(t,
		param(model.ParamPasswordHashingRequired, "Y"),
		param(model.ParamSendPasswordInResp, "Y"),
	)
	svc, _, _ := newUserFixture(t, store, system)

	resp, err := svc.CreateUser(context.Background(), createRequest("U1001"))
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	stored := store.users["U1001"]
	if stored.Password == resp.Password {
		t.Fatal("Hashing on: stored password must not equal the plain one")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(resp.Password)); err != nil {
		t.Errorf("Stored hash does not verify against the returned password: %v", err)
	}
}

func TestCreateUser_PasswordWithheld(t *testing.T) {
	store := newFakeUserStore()
	system := cacheWithFlags(t, param(model.ParamSendPasswordInResp, "N"))
	svc, _, _ := newUserFixture(t, store, system)

	resp, err := svc.CreateUser(context.Background(), createRequest("U1001"))
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if resp.Password != "" {
		t.Error("Password must be withheld when the response flag is off")
	}
}

func TestCreateUser_BadDOB(t *testing.T) {
	store := newFakeUserStore()
	svc, _, _ := newUserFixture(t, store, cacheWithFlags(t))

	req := createRequest("U1001")
	req.DOB = "31-12-1990"
	_, err := svc.CreateUser(context.Background(), req)
	if !errors.Is(err, apperrors.ErrCheckConstraint) {
		t.Errorf("Expected check constraint error, got %v", err)
	}
}

func TestGetUser_CacheRoundTrip(t *testing.T) {
	store := newFakeUserStore()
	store.users["U1001"] = &model.User{UserID: "U1001", FirstName: "Asha", IsAllowed: "Y"}
	svc, _, cache := newUserFixture(t, store, cacheWithFlags(t))

	resp, err := svc.GetUser(context.Background(), "U1001")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if resp.FirstName != "Asha" {
		t.Errorf("Expected first name Asha, got %q", resp.FirstName)
	}
	if _, ok := cache.entries[userCacheKey("U1001")]; !ok {
		t.Error("Expected user cached after read")
	}

	// Second read is served from cache even if the row disappears
	delete(store.users, "U1001")
	resp, err = svc.GetUser(context.Background(), "U1001")
	if err != nil {
		t.Fatalf("Cached GetUser failed: %v", err)
	}
	if resp.UserID != "U1001" {
		t.Errorf("Expected cached user, got %+v", resp)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	svc, _, _ := newUserFixture(t, newFakeUserStore(), cacheWithFlags(t))

	_, err := svc.GetUser(context.Background(), "U9999")
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Expected user not found, got %v", err)
	}
}

func TestUpdateUser_HistoryAndInvalidation(t *testing.T) {
	store := newFakeUserStore()
	store.users["U1001"] = &model.User{UserID: "U1001", FirstName: "Asha", IsAllowed: "Y"}
	system := cacheWithFlags(t, param(model.ParamCreateUserHistory, "Y"))
	svc, _, cache := newUserFixture(t, store, system)

	name := "Anita"
	resp, err := svc.UpdateUser(context.Background(), "U1001", &dto.UpdateUserRequest{FirstName: &name})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if resp.FirstName != "Anita" {
		t.Errorf("Expected updated name, got %q", resp.FirstName)
	}

	if len(store.history) != 1 || store.history[0].action != model.ActionUpdate {
		t.Errorf("Expected one update audit row, got %+v", store.history)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != userCacheKey("U1001") {
		t.Errorf("Expected cache invalidation, got %v", cache.deleted)
	}
}

func TestUpdateUser_HistoryDisabled(t *testing.T) {
	store := newFakeUserStore()
	store.users["U1001"] = &model.User{UserID: "U1001", IsAllowed: "Y"}
	system := cacheWithFlags(t, param(model.ParamCreateUserHistory, "N"))
	svc, _, _ := newUserFixture(t, store, system)

	name := "Anita"
	if _, err := svc.UpdateUser(context.Background(), "U1001", &dto.UpdateUserRequest{FirstName: &name}); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if len(store.history) != 0 {
		t.Errorf("Expected no audit rows, got %+v", store.history)
	}
}

func TestUpdateUser_NoFields(t *testing.T) {
	store := newFakeUserStore()
	store.users["U1001"] = &model.User{UserID: "U1001"}
	svc, _, _ := newUserFixture(t, store, cacheWithFlags(t))

	_, err := svc.UpdateUser(context.Background(), "U1001", &dto.UpdateUserRequest{})
	if !errors.Is(err, apperrors.ErrNoFieldsToUpdate) {
		t.Errorf("Expected no fields error, got %v", err)
	}
	if len(store.history) != 0 {
		t.Error("Empty update must not write an audit row")
	}
}

func TestUpdateUser_HistoryFailureAborts(t *testing.T) {
	store := newFakeUserStore()
	store.users["U1001"] = &model.User{UserID: "U1001", FirstName: "Asha"}
	store.historyErr = apperrors.ErrStorage
	system := cacheWithFlags(t, param(model.ParamCreateUserHistory, "Y"))
	svc, _, _ := newUserFixture(t, store, system)

	name := "Anita"
	_, err := svc.UpdateUser(context.Background(), "U1001", &dto.UpdateUserRequest{FirstName: &name})
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("Expected storage error, got %v", err)
	}
	if store.users["U1001"].FirstName != "Asha" {
		t.Error("Audit failure must abort before the mutation lands")
	}
}

func TestDeleteUser_History(t *testing.T) {
	store := newFakeUserStore()
	store.users["U1001"] = &model.User{UserID: "U1001"}
	system := cacheWithFlags(t, param(model.ParamCreateUserHistory, "Y"))
	svc, _, cache := newUserFixture(t, store, system)

	if err := svc.DeleteUser(context.Background(), "U1001"); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if len(store.history) != 1 || store.history[0].action != model.ActionDelete {
		t.Errorf("Expected one delete audit row, got %+v", store.history)
	}
	if _, ok := store.users["U1001"]; ok {
		t.Error("Expected user removed")
	}
	if len(cache.deleted) != 1 {
		t.Errorf("Expected cache invalidation, got %v", cache.deleted)
	}
}

func TestUpdatePassword_Hashing(t *testing.T) {
	store := newFakeUserStore()
	store.users["U1001"] = &model.User{UserID: "U1001", Password: "old"}
	system := cacheWithFlags(t, param(model.ParamPasswordHashingRequired, "Y"))
	svc, _, _ := newUserFixture(t, store, system)

	err := svc.UpdatePassword(context.Background(), "U1001", &dto.UpdatePasswordRequest{NewPassword: "s3cret!pw"})
	if err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}

	stored := store.users["U1001"].Password
	if stored == "s3cret!pw" {
		t.Fatal("Hashing on: password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte("s3cret!pw")); err != nil {
		t.Errorf("Stored hash does not verify: %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-pw"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}

	tests := []struct {
		name     string
		user     *model.User
		req      *dto.LoginRequest
		expected error
	}{
		{
			name:     "Unknown user collapses to invalid credentials",
			user:     nil,
			req:      &dto.LoginRequest{UserID: "U9999", Password: "whatever"},
			expected: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "Blocked user",
			user:     &model.User{UserID: "U1001", IsAllowed: "N", Password: string(hash)},
			req:      &dto.LoginRequest{UserID: "U1001", Password: "correct-pw"},
			expected: apperrors.ErrUserBlocked,
		},
		{
			name:     "Wrong password",
			user:     &model.User{UserID: "U1001", IsAllowed: "Y", Password: string(hash)},
			req:      &dto.LoginRequest{UserID: "U1001", Password: "wrong-pw"},
			expected: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "Success",
			user:     &model.User{UserID: "U1001", RoleID: "ADMIN", IsAllowed: "Y", Password: string(hash)},
			req:      &dto.LoginRequest{UserID: "U1001", Password: "correct-pw"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeUserStore()
			if tt.user != nil {
				store.users[tt.user.UserID] = tt.user
			}
			system := cacheWithFlags(t, param(model.ParamPasswordHashingRequired, "Y"))
			svc, sessions, _ := newUserFixture(t, store, system)

			resp, err := svc.Login(context.Background(), tt.req)
			if tt.expected != nil {
				if !errors.Is(err, tt.expected) {
					t.Fatalf("Expected %v, got %v", tt.expected, err)
				}
				if len(sessions.created) != 0 {
					t.Error("Rejected login must not create a session")
				}
				return
			}

			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if resp.Token == "" {
				t.Error("Expected a token")
			}
			if resp.ExpiresIn != int(time.Hour.Seconds()) {
				t.Errorf("Expected expires_in %d, got %d", int(time.Hour.Seconds()), resp.ExpiresIn)
			}
			if len(sessions.created) != 1 {
				t.Fatalf("Expected one session row, got %d", len(sessions.created))
			}
			if sessions.created[0].Token != resp.Token {
				t.Error("Session row must carry the issued token")
			}
		})
	}
}

func TestLogin_PlainPasswordComparison(t *testing.T) {
	store := newFakeUserStore()
	store.users["U1001"] = &model.User{UserID: "U1001", IsAllowed: "Y", Password: "plain-pw"}
	system := cacheWithFlags(t, param(model.ParamPasswordHashingRequired, "N"))
	svc, _, _ := newUserFixture(t, store, system)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{UserID: "U1001", Password: "plain-pw"}); err != nil {
		t.Fatalf("Expected plain comparison to pass, got %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{UserID: "U1001", Password: "other"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Expected invalid credentials, got %v", err)
	}
}
