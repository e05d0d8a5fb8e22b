package repository

import (
	"micro_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

// SkillWithCounts 技能列表项，附带课程总数/已完成数
type SkillWithCounts struct {
	model.Skill
	TotalLessons     int64 `json:"totalLessons"`
	LessonsCompleted int64 `json:"lessonsCompleted"`
}

func (r *SkillRepository) Create(skill *model.Skill) error {
	return r.DB.Create(skill).Error
}

func (r *SkillRepository) FindByID(id uint) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.First(&skill, id).Error
	return &skill, err
}

func (r *SkillRepository) FindActiveByUserID(userID uint) ([]SkillWithCounts, error) {
	var skills []SkillWithCounts
	err := r.DB.Model(&model.Skill{}).
		Select("skills.*, "+
			"(SELECT COUNT(*) FROM lessons WHERE lessons.skill_id = skills.id AND lessons.deleted_at IS NULL) AS total_lessons, "+
			"(SELECT COUNT(*) FROM lessons WHERE lessons.skill_id = skills.id AND lessons.status = 'completed' AND lessons.deleted_at IS NULL) AS lessons_completed").
		Where("skills.user_id = ? AND skills.is_active = ?", userID, true).
		Order("skills.created_at DESC").
		Scan(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *SkillRepository) CountActiveByUserID(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Skill{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *SkillRepository) Update(skill *model.Skill) error {
	return r.DB.Save(skill).Error
}

// DeleteCascade 删除技能及其全部派生数据，单事务完成
func (r *SkillRepository) DeleteCascade(skillID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).Where("skill_id = ?", skillID).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("skill_id = ?", skillID).Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}

		if len(lessonIDs) > 0 {
			var quizIDs []uint
			if err := tx.Model(&model.Quiz{}).Where("lesson_id IN ?", lessonIDs).Pluck("id", &quizIDs).Error; err != nil {
				return err
			}
			if len(quizIDs) > 0 {
				if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.QuizAttempt{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.Quiz{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.ReviewCard{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.LessonAttempt{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("skill_id = ?", skillID).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Skill{}, skillID).Error
	})
}
