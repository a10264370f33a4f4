package model

import "time"

// Session pairs an issued token with an expiry time and a sticky expired flag.
// A user accumulates one row per login; the newest row by session_id wins.
type Session struct {
	SessionID   uint      `gorm:"column:session_id;primaryKey;autoIncrement"`
	UserID      string    `gorm:"column:user_id;not null;index"`
	Token       string    `gorm:"column:token;not null"`
	SessionTime time.Time `gorm:"column:session_time;not null"`
	IsExpired   bool      `gorm:"column:is_expired;not null;default:false"`
}

func (Session) TableName() string {
	return "user_sessions"
}

// Alive reports whether the session can still authorize requests at t.
func (s *Session) Alive(t time.Time) bool {
	return !s.IsExpired && s.SessionTime.After(t)
}
