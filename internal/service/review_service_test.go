package service

import (
	"testing"
	"time"

	"micro_tutor_backend/internal/model"
	"micro_tutor_backend/internal/repository"
	"micro_tutor_backend/internal/testutil"
	"micro_tutor_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(repository.NewReviewCardRepository(db), newGamificationService(db))
}

func seedCard(t *testing.T, db *gorm.DB, userID uint, easeFactor float64, intervalDays, repetitions int) *model.ReviewCard {
	t.Helper()
	card := model.ReviewCard{
		UserID:       userID,
		LessonID:     1,
		Question:     "问题",
		Answer:       "答案",
		EaseFactor:   easeFactor,
		IntervalDays: intervalDays,
		Repetitions:  repetitions,
		NextReviewAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&card).Error)
	return &card
}

func TestRateCardRejectsInvalidQuality(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newReviewService(db)
	card := seedCard(t, db, userID, 2.5, 1, 0)

	for _, quality := range []int{-1, 6, 100} {
		_, err := svc.RateCard(userID, card.ID, quality)
		assert.ErrorIs(t, err, util.ErrInvalidQuality)
	}
}

func TestRateCardUnknownCard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newReviewService(db)

	_, err := svc.RateCard(userID, 9999, 4)
	assert.ErrorIs(t, err, util.ErrCardNotFound)
}

func TestRateCardForgottenResetsProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newReviewService(db)
	card := seedCard(t, db, userID, 2.5, 15, 4)

	result, err := svc.RateCard(userID, card.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Repetitions)
	assert.Equal(t, 1, result.IntervalDays)
	// q=1：ef = 2.5 + 0.1 - 4*(0.08+4*0.02) = 1.96
	assert.InDelta(t, 1.96, result.EaseFactor, 1e-9)
	assert.Zero(t, result.XPEarned)

	// 忘记不给经验，但算一次复习
	progress, err := svc.Gamification.GetProgress(userID)
	require.NoError(t, err)
	assert.Zero(t, progress.TotalXP)
	assert.Equal(t, 1, progress.ReviewsCompleted)
}

func TestRateCardFirstSuccessfulRepetition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newReviewService(db)
	card := seedCard(t, db, userID, 2.5, 1, 0)

	result, err := svc.RateCard(userID, card.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Repetitions)
	assert.Equal(t, 1, result.IntervalDays)
	// q=4：ef = 2.5 + 0.1 - 1*(0.08+0.02) = 2.5，正好不变
	assert.InDelta(t, 2.5, result.EaseFactor, 1e-9)
	assert.Equal(t, XPReviewCard, result.XPEarned)
}

func TestRateCardSecondRepetitionSixDays(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newReviewService(db)
	card := seedCard(t, db, userID, 2.5, 1, 1)

	result, err := svc.RateCard(userID, card.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Repetitions)
	assert.Equal(t, 6, result.IntervalDays)
	// q=5：ef = 2.5 + 0.1 - 0 = 2.6
	assert.InDelta(t, 2.6, result.EaseFactor, 1e-9)
}

func TestRateCardMatureIntervalGrowsByEaseFactor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newReviewService(db)
	card := seedCard(t, db, userID, 2.5, 6, 2)

	result, err := svc.RateCard(userID, card.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Repetitions)
	// round(6 * 2.5) = 15，用的是更新前的易度系数
	assert.Equal(t, 15, result.IntervalDays)
}

func TestRateCardEaseFactorFloor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newReviewService(db)
	card := seedCard(t, db, userID, 1.3, 1, 0)

	result, err := svc.RateCard(userID, card.ID, 0)
	require.NoError(t, err)
	// 已到下限，再差的评分也不会低于1.3
	assert.InDelta(t, 1.3, result.EaseFactor, 1e-9)
}

func TestRateCardPersistsScheduling(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newReviewService(db)
	card := seedCard(t, db, userID, 2.5, 6, 2)

	result, err := svc.RateCard(userID, card.ID, 3)
	require.NoError(t, err)

	var stored model.ReviewCard
	require.NoError(t, db.First(&stored, card.ID).Error)
	assert.Equal(t, result.Repetitions, stored.Repetitions)
	assert.Equal(t, result.IntervalDays, stored.IntervalDays)
	assert.InDelta(t, result.EaseFactor, stored.EaseFactor, 1e-9)
	assert.NotNil(t, stored.LastReviewedAt)
	assert.True(t, stored.NextReviewAt.After(time.Now().UTC().AddDate(0, 0, stored.IntervalDays-1)))
}

func TestRateCardFirstReviewAchievement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newReviewService(db)
	card := seedCard(t, db, userID, 2.5, 1, 0)

	result, err := svc.RateCard(userID, card.ID, 5)
	require.NoError(t, err)

	keys := make([]string, 0, len(result.NewAchievements))
	for _, def := range result.NewAchievements {
		keys = append(keys, def.Key)
	}
	assert.Contains(t, keys, "first_review")
}

func TestGetQueueOnlyDueCards(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newReviewService(db)

	due := seedCard(t, db, userID, 2.5, 1, 0)
	future := model.ReviewCard{
		UserID:       userID,
		LessonID:     1,
		Question:     "未到期",
		Answer:       "答案",
		EaseFactor:   2.5,
		IntervalDays: 6,
		NextReviewAt: time.Now().UTC().AddDate(0, 0, 3),
	}
	require.NoError(t, db.Create(&future).Error)

	queue, err := svc.GetQueue(userID)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, due.ID, queue[0].ID)

	count, err := svc.CountDue(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
