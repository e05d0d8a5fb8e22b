package model

import "time"

// SkillProject 技能的结业项目（AI生成的项目说明JSON）
// swagger:model SkillProject
type SkillProject struct {
	BaseModel
	SkillID         uint   `gorm:"index;not null" json:"skillId"`
	DescriptionJSON string `gorm:"type:text;not null" json:"-"`
}

func (SkillProject) TableName() string {
	return "skill_projects"
}

// ProjectSubmission 项目提交及AI评审结果
// swagger:model ProjectSubmission
type ProjectSubmission struct {
	BaseModel
	UserID       uint      `gorm:"index;not null" json:"userId"`
	ProjectID    uint      `gorm:"index;not null" json:"projectId"`
	Submission   string    `gorm:"type:text;not null" json:"-"`
	FeedbackJSON string    `gorm:"type:text" json:"-"`
	XPEarned     int       `gorm:"default:0" json:"xpEarned"`
	Passed       bool      `gorm:"default:false" json:"passed"`
	CompletedAt  time.Time `gorm:"not null" json:"completedAt"`
}

func (ProjectSubmission) TableName() string {
	return "skill_project_submissions"
}
