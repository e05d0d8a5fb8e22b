package repository

import (
	"micro_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserID(userID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Update(progress *model.UserProgress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) IncrementLessons(userID uint) error {
	return r.increment(userID, "lessons_completed")
}

func (r *ProgressRepository) IncrementQuizzes(userID uint) error {
	return r.increment(userID, "quizzes_completed")
}

func (r *ProgressRepository) IncrementReviews(userID uint) error {
	return r.increment(userID, "reviews_completed")
}

func (r *ProgressRepository) increment(userID uint, column string) error {
	return r.DB.Model(&model.UserProgress{}).
		Where("user_id = ?", userID).
		Update(column, gorm.Expr(column+" + 1")).
		Error
}
