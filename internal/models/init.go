package models

import (
	"strings"

	"github.com/pawhaven/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultAdminPassword = "admin123"

// InitDefaultAdmin 首次启动时创建默认管理员
func InitDefaultAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		if err := db.Model(&Admin{}).Where("username = ?", "admin").Update("is_super", true).Error; err != nil {
			logger.Warnw("ensure_default_admin_super_failed", "error", err)
		}
		return nil
	}

	if strings.TrimSpace(username) == "" {
		username = "admin"
	}
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsSuper:      strings.EqualFold(strings.TrimSpace(username), "admin"),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
	} else {
		logger.Infow("default_admin_created", "username", username)
	}
	return nil
}
