package model

// SystemParameter is one operator-tunable key/value row. Boolean parameters
// use the single-character "Y"/"N" convention, numeric ones plain integers.
type SystemParameter struct {
	ParamID    string `gorm:"column:param_id;primaryKey"`
	ParamValue string `gorm:"column:param_value;not null"`
}

func (SystemParameter) TableName() string {
	return "system_parameters"
}

// Recognized parameter IDs
const (
	ParamPasswordHashingRequired  = "PasswordHashingRequired"
	ParamSendPasswordInResp       = "SendPasswordInResp"
	ParamCreateUserHistory        = "CreateUserHistory"
	ParamAutoCacheRefreshRequired = "AutoCacheRefreshRequired"
	ParamAutoCacheRefreshInterval = "AutoCacheRefreshInterval"
)
