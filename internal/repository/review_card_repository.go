package repository

import (
	"micro_tutor_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ReviewCardRepository struct {
	DB *gorm.DB
}

func NewReviewCardRepository(db *gorm.DB) *ReviewCardRepository {
	return &ReviewCardRepository{DB: db}
}

// DueCard 复习队列项，带所属课题
type DueCard struct {
	model.ReviewCard
	LessonTopic string `json:"lessonTopic"`
}

func (r *ReviewCardRepository) CreateBatch(cards []model.ReviewCard) error {
	if len(cards) == 0 {
		return nil
	}
	return r.DB.Create(&cards).Error
}

func (r *ReviewCardRepository) FindByIDAndUserID(cardID, userID uint) (*model.ReviewCard, error) {
	var card model.ReviewCard
	err := r.DB.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *ReviewCardRepository) FindDueByUserID(userID uint, now time.Time) ([]DueCard, error) {
	var cards []DueCard
	err := r.DB.Model(&model.ReviewCard{}).
		Select("review_cards.*, lessons.topic AS lesson_topic").
		Joins("LEFT JOIN lessons ON lessons.id = review_cards.lesson_id").
		Where("review_cards.user_id = ? AND review_cards.next_review_at <= ?", userID, now).
		Order("review_cards.next_review_at").
		Scan(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *ReviewCardRepository) CountDue(userID uint, now time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ReviewCard{}).
		Where("user_id = ? AND next_review_at <= ?", userID, now).
		Count(&count).Error
	return count, err
}

// CountDueAll 全库到期卡片数，监控打点用
func (r *ReviewCardRepository) CountDueAll(now time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ReviewCard{}).
		Where("next_review_at <= ?", now).
		Count(&count).Error
	return count, err
}

// UpdateScheduling 一次写入一张卡的全部调度字段（要么全部生效要么都不生效）
func (r *ReviewCardRepository) UpdateScheduling(cardID uint, easeFactor float64, intervalDays, repetitions int, nextReviewAt, lastReviewedAt time.Time) error {
	return r.DB.Model(&model.ReviewCard{}).
		Where("id = ?", cardID).
		Updates(map[string]interface{}{
			"ease_factor":      easeFactor,
			"interval_days":    intervalDays,
			"repetitions":      repetitions,
			"next_review_at":   nextReviewAt,
			"last_reviewed_at": lastReviewedAt,
		}).Error
}
