package model

import "time"

// Skill 一个学习主题及其AI生成的课程大纲
// swagger:model Skill
type Skill struct {
	BaseModel
	UserID          uint   `gorm:"index;not null" json:"userId"`
	Name            string `gorm:"size:200;not null" json:"name"`
	Description     string `gorm:"type:text" json:"description"`
	DifficultyLevel int    `gorm:"default:1" json:"difficultyLevel"`
	CurriculumJSON  string `gorm:"type:text" json:"-"`
	Cheatsheet      string `gorm:"type:text" json:"-"` // 按需生成，生成后缓存在列里
	IsActive        bool   `gorm:"default:true" json:"isActive"`
}

func (Skill) TableName() string {
	return "skills"
}

type LessonStatus string

const (
	LessonAvailable LessonStatus = "available"
	LessonCompleted LessonStatus = "completed"
)

// Lesson 课程大纲里的一节课。内容在首次请求时由AI生成。
// swagger:model Lesson
type Lesson struct {
	BaseModel
	SkillID          uint         `gorm:"index;not null" json:"skillId"`
	Topic            string       `gorm:"size:200;not null" json:"topic"`
	OrderIndex       int          `gorm:"not null" json:"orderIndex"`
	ContentJSON      string       `gorm:"type:text" json:"-"`
	Summary          string       `gorm:"type:text" json:"summary"`
	Difficulty       int          `gorm:"default:1" json:"difficulty"`
	EstimatedMinutes int          `gorm:"default:5" json:"estimatedMinutes"`
	Status           LessonStatus `gorm:"size:20;default:'available'" json:"status"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// LessonAttempt 完课记录
type LessonAttempt struct {
	BaseModel
	UserID           uint       `gorm:"index;not null"`
	LessonID         uint       `gorm:"index;not null"`
	CompletedAt      *time.Time `json:"completedAt"`
	TimeSpentSeconds int        `json:"timeSpentSeconds"`
}

func (LessonAttempt) TableName() string {
	return "lesson_attempts"
}
