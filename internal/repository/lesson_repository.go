package repository

import (
	"micro_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) FindBySkillID(skillID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("skill_id = ?", skillID).Order("order_index").Find(&lessons).Error
	return lessons, err
}

// FindCompletedTopicsBefore 返回同一技能里排在该课之前且已完成的课题，
// 用于给AI提供已学内容上下文
func (r *LessonRepository) FindCompletedTopicsBefore(skillID uint, orderIndex int) ([]string, error) {
	var topics []string
	err := r.DB.Model(&model.Lesson{}).
		Where("skill_id = ? AND order_index < ? AND status = ?", skillID, orderIndex, model.LessonCompleted).
		Order("order_index").
		Pluck("topic", &topics).Error
	return topics, err
}

// FindGeneratedBySkillID 返回已生成内容的课程，备忘单汇总用
func (r *LessonRepository) FindGeneratedBySkillID(skillID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("skill_id = ? AND content_json IS NOT NULL AND content_json != ''", skillID).
		Order("order_index").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) CreateAttempt(attempt *model.LessonAttempt) error {
	return r.DB.Create(attempt).Error
}
