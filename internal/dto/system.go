package dto

import "time"

// SystemFlags mirrors the resolved system_parameters snapshot.
type SystemFlags struct {
	PasswordHashingRequired  bool          `json:"password_hashing_required"`
	SendPasswordInResp       bool          `json:"send_password_in_resp"`
	CreateUserHistory        bool          `json:"create_user_history"`
	AutoCacheRefreshRequired bool          `json:"auto_cache_refresh_required"`
	AutoCacheRefreshInterval time.Duration `json:"auto_cache_refresh_interval"`
}

type CacheRefreshResponse struct {
	Message     string      `json:"message"`
	Flags       SystemFlags `json:"flags"`
	LastUpdated time.Time   `json:"last_updated"`
}
