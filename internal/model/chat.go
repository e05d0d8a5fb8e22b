package model

// ChatMessage 导师对话历史，按技能维度保存
// swagger:model ChatMessage
type ChatMessage struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	SkillID  *uint  `gorm:"index" json:"skillId"`
	LessonID *uint  `gorm:"index" json:"lessonId"`
	Role     string `gorm:"size:20;not null" json:"role"`
	Content  string `gorm:"type:text;not null" json:"content"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
