package service

import (
	"errors"
	"math"
	"strconv"
	"time"

	"micro_tutor_backend/internal/repository"
	"micro_tutor_backend/internal/util"
	"micro_tutor_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// ReviewService 间隔重复复习调度，排期算法为SM-2
type ReviewService struct {
	CardRepo     *repository.ReviewCardRepository
	Gamification *GamificationService
}

func NewReviewService(cardRepo *repository.ReviewCardRepository, gamification *GamificationService) *ReviewService {
	return &ReviewService{CardRepo: cardRepo, Gamification: gamification}
}

type RateCardResult struct {
	CardID          uint             `json:"card_id"`
	Quality         int              `json:"quality"`
	IntervalDays    int              `json:"interval_days"`
	EaseFactor      float64          `json:"ease_factor"`
	Repetitions     int              `json:"repetitions"`
	NextReviewAt    time.Time        `json:"next_review_at"`
	XPEarned        int              `json:"xp_earned"`
	NewAchievements []AchievementDef `json:"new_achievements"`
}

// RateCard 按SM-2处理一次复习评分并更新卡片排期。
// quality为0到5的自评：3以上算记住，以下算忘记。
// 忘记时重复次数归零、间隔回到1天；记住时按重复次数推进间隔
// （第1次1天，第2次6天，之后间隔乘以易度系数取整）。
// 易度系数无论记住与否都用更新前的值和本次评分重算，下限1.3。
func (s *ReviewService) RateCard(userID, cardID uint, quality int) (*RateCardResult, error) {
	if quality < 0 || quality > 5 {
		return nil, util.ErrInvalidQuality
	}

	card, err := s.CardRepo.FindByIDAndUserID(cardID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}

	easeFactor := card.EaseFactor
	if easeFactor == 0 {
		easeFactor = 2.5
	}
	intervalDays := card.IntervalDays
	if intervalDays == 0 {
		intervalDays = 1
	}
	repetitions := card.Repetitions

	if quality < 3 {
		repetitions = 0
		intervalDays = 1
	} else {
		switch repetitions {
		case 0:
			intervalDays = 1
		case 1:
			intervalDays = 6
		default:
			intervalDays = int(math.Round(float64(intervalDays) * easeFactor))
		}
		repetitions++
	}

	q := float64(quality)
	easeFactor = math.Max(1.3, easeFactor+0.1-(5-q)*(0.08+(5-q)*0.02))

	now := time.Now().UTC()
	nextReviewAt := now.AddDate(0, 0, intervalDays)
	if err := s.CardRepo.UpdateScheduling(card.ID, easeFactor, intervalDays, repetitions, nextReviewAt, now); err != nil {
		return nil, err
	}
	monitoring.ReviewsRated.WithLabelValues(strconv.Itoa(quality)).Inc()

	// 排期落库后按固定顺序记账：加经验、计数、连击、成就
	xpEarned := 0
	if quality >= 3 {
		xpResult, err := s.Gamification.AwardActivity(userID, "review", XPReviewCard)
		if err != nil {
			return nil, err
		}
		xpEarned = xpResult.XPAdded
	}
	if err := s.Gamification.RecordReviewCompleted(userID); err != nil {
		return nil, err
	}
	if _, err := s.Gamification.UpdateStreak(userID); err != nil {
		return nil, err
	}
	newAchievements, err := s.Gamification.CheckAchievements(userID)
	if err != nil {
		return nil, err
	}

	return &RateCardResult{
		CardID:          card.ID,
		Quality:         quality,
		IntervalDays:    intervalDays,
		EaseFactor:      easeFactor,
		Repetitions:     repetitions,
		NextReviewAt:    nextReviewAt,
		XPEarned:        xpEarned,
		NewAchievements: newAchievements,
	}, nil
}

// GetQueue 到期复习队列，先到期的排前面
func (s *ReviewService) GetQueue(userID uint) ([]repository.DueCard, error) {
	return s.CardRepo.FindDueByUserID(userID, time.Now().UTC())
}

// CountDue 到期卡片数，进度页和监控都用它
func (s *ReviewService) CountDue(userID uint) (int64, error) {
	return s.CardRepo.CountDue(userID, time.Now().UTC())
}
