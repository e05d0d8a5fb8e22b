package model

import "time"

// ReviewCard 间隔重复复习卡片，调度参数由SM-2算法维护。
// 不变量：EaseFactor >= 1.3，IntervalDays >= 1。
// swagger:model ReviewCard
type ReviewCard struct {
	BaseModel
	UserID         uint       `gorm:"index;not null" json:"userId"`
	LessonID       uint       `gorm:"index;not null" json:"lessonId"`
	Question       string     `gorm:"type:text;not null" json:"question"`
	Answer         string     `gorm:"type:text;not null" json:"answer"`
	EaseFactor     float64    `gorm:"default:2.5" json:"easeFactor"`
	IntervalDays   int        `gorm:"default:1" json:"intervalDays"`
	Repetitions    int        `gorm:"default:0" json:"repetitions"` // 连续记住的次数，低分评分会清零
	NextReviewAt   time.Time  `gorm:"index;not null" json:"nextReviewAt"`
	LastReviewedAt *time.Time `json:"lastReviewedAt"`
}

func (ReviewCard) TableName() string {
	return "review_cards"
}
