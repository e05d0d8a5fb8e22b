package model

// Quiz 某节课的一套测验题（题目为AI生成的JSON）
// swagger:model Quiz
type Quiz struct {
	BaseModel
	LessonID      uint   `gorm:"index;not null" json:"lessonId"`
	QuestionsJSON string `gorm:"type:text;not null" json:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizAttempt 一次测验提交
type QuizAttempt struct {
	BaseModel
	UserID      uint    `gorm:"index;not null" json:"userId"`
	QuizID      uint    `gorm:"index;not null" json:"quizId"`
	AnswersJSON string  `gorm:"type:text;not null" json:"-"`
	Score       float64 `gorm:"not null" json:"score"`
	XPEarned    int     `gorm:"default:0" json:"xpEarned"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
