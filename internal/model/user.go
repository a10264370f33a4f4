package model

import (
	"gorm.io/datatypes"
)

type User struct {
	UserID      string         `gorm:"column:user_id;primaryKey"`
	FirstName   string         `gorm:"column:first_name"`
	MiddleName  string         `gorm:"column:middle_name"`
	LastName    string         `gorm:"column:last_name"`
	Email       string         `gorm:"column:email;unique;not null"`
	Phone       string         `gorm:"column:phone"`
	Gender      string         `gorm:"column:gender;type:char(1);not null;check:gender IN ('M','F')"`
	DOB         datatypes.Date `gorm:"column:dob"`
	CountryCode string         `gorm:"column:country_code;type:varchar(3)"`
	StateCode   string         `gorm:"column:state_code;type:varchar(3)"`
	CityName    string         `gorm:"column:city_name"`
	RoleID      string         `gorm:"column:role_id"`
	IsAllowed   string         `gorm:"column:is_allowed;type:char(1);default:Y;check:is_allowed IN ('Y','N')"`
	Password    string         `gorm:"column:password;not null"`
}

func (User) TableName() string {
	return "users"
}
