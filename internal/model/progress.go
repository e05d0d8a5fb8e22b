package model

// UserProgress 每个用户一行的进度账本。
// 不变量：Level 始终等于 LevelFromXP(TotalXP)；LongestStreak >= CurrentStreak。
// swagger:model UserProgress
type UserProgress struct {
	UserID           uint   `gorm:"primaryKey" json:"userId"`
	TotalXP          int    `gorm:"default:0" json:"totalXp"`
	Level            int    `gorm:"default:1" json:"level"`
	CurrentStreak    int    `gorm:"default:0" json:"currentStreak"`
	LongestStreak    int    `gorm:"default:0" json:"longestStreak"`
	LastActivityDate string `gorm:"size:10" json:"lastActivityDate"` // YYYY-MM-DD，空串表示从未活动
	LessonsCompleted int    `gorm:"default:0" json:"lessonsCompleted"`
	QuizzesCompleted int    `gorm:"default:0" json:"quizzesCompleted"`
	ReviewsCompleted int    `gorm:"default:0" json:"reviewsCompleted"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
