package service

import (
	"testing"

	"micro_tutor_backend/internal/model"
	"micro_tutor_backend/internal/repository"
	"micro_tutor_backend/internal/testutil"
	"micro_tutor_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLessonService(db *gorm.DB, ai ContentGenerator) *LessonService {
	return NewLessonService(
		repository.NewLessonRepository(db),
		repository.NewSkillRepository(db),
		repository.NewReviewCardRepository(db),
		newGamificationService(db),
		ai,
	)
}

func seedSkillWithLessons(t *testing.T, db *gorm.DB, userID uint, topics ...string) (*model.Skill, []model.Lesson) {
	t.Helper()
	skill := model.Skill{UserID: userID, Name: "Go编程", DifficultyLevel: 2, IsActive: true}
	require.NoError(t, db.Create(&skill).Error)

	lessons := make([]model.Lesson, 0, len(topics))
	for i, topic := range topics {
		lesson := model.Lesson{SkillID: skill.ID, Topic: topic, OrderIndex: i, Difficulty: 2, Status: model.LessonAvailable}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return &skill, lessons
}

func TestGenerateLessonStoresContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newLessonService(db, &stubGenerator{})
	_, lessons := seedSkillWithLessons(t, db, userID, "变量", "函数")

	payload, err := svc.GenerateLesson(lessons[0].ID)
	require.NoError(t, err)
	require.NotNil(t, payload.Content)
	assert.Equal(t, "这节课讲变量", payload.Content.Introduction)

	var stored model.Lesson
	require.NoError(t, db.First(&stored, lessons[0].ID).Error)
	assert.NotEmpty(t, stored.ContentJSON)
	assert.Equal(t, "变量小结", stored.Summary)
}

func TestGenerateLessonIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newLessonService(db, &stubGenerator{})
	_, lessons := seedSkillWithLessons(t, db, userID, "变量")

	first, err := svc.GenerateLesson(lessons[0].ID)
	require.NoError(t, err)

	// 已生成过的课程不再调AI，即使生成器不可用也能返回
	svc.AI = &stubGenerator{failAll: true}
	second, err := svc.GenerateLesson(lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, first.Content.Introduction, second.Content.Introduction)
}

func TestGenerateLessonUnknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedUser(t, db)
	svc := newLessonService(db, &stubGenerator{})

	_, err := svc.GenerateLesson(9999)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestCompleteLessonAwardsXPAndCards(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newLessonService(db, &stubGenerator{})
	_, lessons := seedSkillWithLessons(t, db, userID, "变量")

	_, err := svc.GenerateLesson(lessons[0].ID)
	require.NoError(t, err)

	result, err := svc.CompleteLesson(userID, lessons[0].ID, 300)
	require.NoError(t, err)
	assert.False(t, result.AlreadyCompleted)
	assert.Equal(t, XPLessonComplete, result.XPEarned)
	assert.Equal(t, 2, result.CardsCreated)
	require.NotNil(t, result.Streak)
	assert.Equal(t, 1, result.Streak.CurrentStreak)

	keys := make([]string, 0, len(result.NewAchievements))
	for _, def := range result.NewAchievements {
		keys = append(keys, def.Key)
	}
	assert.Contains(t, keys, "first_lesson")

	progress, err := svc.Gamification.GetProgress(userID)
	require.NoError(t, err)
	assert.Equal(t, XPLessonComplete, progress.TotalXP)
	assert.Equal(t, 1, progress.LessonsCompleted)

	var cardCount int64
	require.NoError(t, db.Model(&model.ReviewCard{}).Where("lesson_id = ?", lessons[0].ID).Count(&cardCount).Error)
	assert.Equal(t, int64(2), cardCount)
}

func TestCompleteLessonIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newLessonService(db, &stubGenerator{})
	_, lessons := seedSkillWithLessons(t, db, userID, "变量")

	_, err := svc.CompleteLesson(userID, lessons[0].ID, 0)
	require.NoError(t, err)

	again, err := svc.CompleteLesson(userID, lessons[0].ID, 0)
	require.NoError(t, err)
	assert.True(t, again.AlreadyCompleted)
	assert.Zero(t, again.XPEarned)

	progress, err := svc.Gamification.GetProgress(userID)
	require.NoError(t, err)
	assert.Equal(t, XPLessonComplete, progress.TotalXP)
	assert.Equal(t, 1, progress.LessonsCompleted)
}

func TestCompleteLessonSurvivesCardFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newLessonService(db, &stubGenerator{})
	_, lessons := seedSkillWithLessons(t, db, userID, "变量")

	_, err := svc.GenerateLesson(lessons[0].ID)
	require.NoError(t, err)

	// 卡片生成失败不影响完课入账
	svc.AI = &stubGenerator{failAll: true}
	result, err := svc.CompleteLesson(userID, lessons[0].ID, 0)
	require.NoError(t, err)
	assert.Equal(t, XPLessonComplete, result.XPEarned)
	assert.Zero(t, result.CardsCreated)
}
