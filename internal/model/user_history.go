package model

import (
	"time"

	"gorm.io/datatypes"
)

// Audit action codes
const (
	ActionUpdate = "U"
	ActionDelete = "D"
)

// UserHistory is an append-only snapshot of a user record taken immediately
// before a mutation. Rows are never updated or read back by the application.
type UserHistory struct {
	HistoryID   uint           `gorm:"column:history_id;primaryKey;autoIncrement"`
	UserID      string         `gorm:"column:user_id;not null;index"`
	FirstName   string         `gorm:"column:first_name"`
	MiddleName  string         `gorm:"column:middle_name"`
	LastName    string         `gorm:"column:last_name"`
	Email       string         `gorm:"column:email"`
	Phone       string         `gorm:"column:phone"`
	Gender      string         `gorm:"column:gender;type:char(1)"`
	DOB         datatypes.Date `gorm:"column:dob"`
	CountryCode string         `gorm:"column:country_code;type:varchar(3)"`
	StateCode   string         `gorm:"column:state_code;type:varchar(3)"`
	CityName    string         `gorm:"column:city_name"`
	RoleID      string         `gorm:"column:role_id"`
	IsAllowed   string         `gorm:"column:is_allowed;type:char(1)"`
	Password    string         `gorm:"column:password"`
	Action      string         `gorm:"column:action;type:char(1);not null"`
	RecordedAt  time.Time      `gorm:"column:recorded_at;autoCreateTime"`
}

func (UserHistory) TableName() string {
	return "users_history"
}

// SnapshotOf copies a user record into a history row with the given action.
func SnapshotOf(u *User, action string) *UserHistory {
	return &UserHistory{
		UserID:      u.UserID,
		FirstName:   u.FirstName,
		MiddleName:  u.MiddleName,
		LastName:    u.LastName,
		Email:       u.Email,
		Phone:       u.Phone,
		Gender:      u.Gender,
		DOB:         u.DOB,
		CountryCode: u.CountryCode,
		StateCode:   u.StateCode,
		CityName:    u.CityName,
		RoleID:      u.RoleID,
		IsAllowed:   u.IsAllowed,
		Password:    u.Password,
		Action:      action,
	}
}
