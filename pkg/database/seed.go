package database

import (
	"errors"

	"github.com/bms-digital/user-service/internal/model"
	"gorm.io/gorm"
)

// defaultParameters are installed on first boot so the config cache always has
// a complete row set to read. Existing rows are never overwritten.
func defaultParameters() []model.SystemParameter {
	return []model.SystemParameter{
		{ParamID: model.ParamPasswordHashingRequired, ParamValue: "Y"},
		{ParamID: model.ParamSendPasswordInResp, ParamValue: "N"},
		{ParamID: model.ParamCreateUserHistory, ParamValue: "Y"},
		{ParamID: model.ParamAutoCacheRefreshRequired, ParamValue: "Y"},
		{ParamID: model.ParamAutoCacheRefreshInterval, ParamValue: "600000"}, // milliseconds
	}
}

// Seed creates initial data for the database
func Seed(db *gorm.DB) error {
	return SeedSystemParameters(db)
}

// SeedSystemParameters inserts any missing default parameter rows
func SeedSystemParameters(db *gorm.DB) error {
	for _, param := range defaultParameters() {
		var existing model.SystemParameter
		result := db.Where("param_id = ?", param.ParamID).First(&existing)

		if result.Error == nil {
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if err := db.Create(&param).Error; err != nil {
			return err
		}
	}
	return nil
}
