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

func newQuizService(db *gorm.DB, ai ContentGenerator) *QuizService {
	return NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewLessonRepository(db),
		newGamificationService(db),
		ai,
	)
}

func seedGeneratedLesson(t *testing.T, db *gorm.DB, userID uint) model.Lesson {
	t.Helper()
	svc := newLessonService(db, &stubGenerator{})
	_, lessons := seedSkillWithLessons(t, db, userID, "变量")
	_, err := svc.GenerateLesson(lessons[0].ID)
	require.NoError(t, err)

	var lesson model.Lesson
	require.NoError(t, db.First(&lesson, lessons[0].ID).Error)
	return lesson
}

func TestGenerateQuizRequiresContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newQuizService(db, &stubGenerator{})
	_, lessons := seedSkillWithLessons(t, db, userID, "变量")

	_, err := svc.GenerateQuiz(lessons[0].ID)
	assert.ErrorIs(t, err, util.ErrNoLessonContent)
}

func TestGenerateAndGetQuiz(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newQuizService(db, &stubGenerator{})
	lesson := seedGeneratedLesson(t, db, userID)

	generated, err := svc.GenerateQuiz(lesson.ID)
	require.NoError(t, err)
	assert.NotZero(t, generated.QuizID)
	assert.Len(t, generated.Questions, 2)

	fetched, err := svc.GetQuiz(lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, generated.QuizID, fetched.QuizID)
	assert.Equal(t, generated.Questions, fetched.Questions)
}

func TestGetQuizMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newQuizService(db, &stubGenerator{})
	_, lessons := seedSkillWithLessons(t, db, userID, "变量")

	_, err := svc.GetQuiz(lessons[0].ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestSubmitQuizPartialScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newQuizService(db, &stubGenerator{})
	lesson := seedGeneratedLesson(t, db, userID)

	quiz, err := svc.GenerateQuiz(lesson.ID)
	require.NoError(t, err)

	result, err := svc.SubmitQuiz(userID, quiz.QuizID, map[string]AnswerRecord{
		"0": {Answer: "A", Correct: true},
		"1": {Answer: "错误答案", Correct: false},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.InDelta(t, 0.5, result.Score, 1e-9)
	assert.Equal(t, XPCorrectAnswer, result.XPEarned)

	// 未满分不解锁满分成就
	for _, def := range result.NewAchievements {
		assert.NotEqual(t, "perfect_score", def.Key)
	}
}

func TestSubmitQuizPerfectScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newQuizService(db, &stubGenerator{})
	lesson := seedGeneratedLesson(t, db, userID)

	quiz, err := svc.GenerateQuiz(lesson.ID)
	require.NoError(t, err)

	result, err := svc.SubmitQuiz(userID, quiz.QuizID, map[string]AnswerRecord{
		"0": {Answer: "A", Correct: true},
		"1": {Answer: "参考答案", Correct: true},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.Score, 1e-9)
	assert.Equal(t, 2*XPCorrectAnswer+XPPerfectQuiz, result.XPEarned)

	keys := make([]string, 0, len(result.NewAchievements))
	for _, def := range result.NewAchievements {
		keys = append(keys, def.Key)
	}
	assert.Contains(t, keys, "perfect_score")
	assert.Contains(t, keys, "first_quiz")

	progress, err := svc.Gamification.GetProgress(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.QuizzesCompleted)
	assert.Equal(t, 2*XPCorrectAnswer+XPPerfectQuiz, progress.TotalXP)
}

func TestSubmitQuizUnknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newQuizService(db, &stubGenerator{})

	_, err := svc.SubmitQuiz(userID, 9999, map[string]AnswerRecord{})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestGradeAnswerDelegates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedUser(t, db)
	svc := newQuizService(db, &stubGenerator{})

	question := QuizQuestion{Question: "问题", Type: "open_ended", CorrectAnswer: "答案"}
	result, err := svc.GradeAnswer(question, "答案")
	require.NoError(t, err)
	assert.True(t, result.Correct)

	wrong, err := svc.GradeAnswer(question, "别的")
	require.NoError(t, err)
	assert.False(t, wrong.Correct)
}
