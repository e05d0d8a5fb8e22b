package model

import "time"

// Achievement 成就解锁记录。
// (user_id, achievement_key) 唯一索引保证每个成就最多解锁一次，
// 重复解锁由存储层的 insert-if-absent 语义挡掉。
// swagger:model Achievement
type Achievement struct {
	BaseModel
	UserID         uint      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"userId"`
	AchievementKey string    `gorm:"size:50;uniqueIndex:idx_user_achievement;not null" json:"key"`
	UnlockedAt     time.Time `gorm:"not null" json:"unlockedAt"`
}

func (Achievement) TableName() string {
	return "achievements"
}
