package model

import (
	"time"
)

// User 学习者账户。单用户部署只有一条种子记录（Learner）。
// swagger:model User
type User struct {
	BaseModel
	Name         string    `gorm:"size:100;not null;default:'Learner'" json:"Name"`
	SettingsJSON string    `gorm:"type:text" json:"-"`
	LastSeen     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"LastSeen"`
}

func (User) TableName() string {
	return "users"
}
