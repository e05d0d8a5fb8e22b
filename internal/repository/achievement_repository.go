package repository

import (
	"micro_tutor_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

// UnlockIfAbsent 尝试插入解锁记录，返回是否为新插入。
// 靠 (user_id, achievement_key) 唯一索引 + ON CONFLICT DO NOTHING 实现，
// 并发重复解锁由数据库裁决，应用层不做先查后插。
func (r *AchievementRepository) UnlockIfAbsent(userID uint, key string) (bool, error) {
	unlock := model.Achievement{
		UserID:         userID,
		AchievementKey: key,
		UnlockedAt:     time.Now(),
	}
	result := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&unlock)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AchievementRepository) FindKeysByUserID(userID uint) ([]string, error) {
	var keys []string
	err := r.DB.Model(&model.Achievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_key", &keys).Error
	return keys, err
}
