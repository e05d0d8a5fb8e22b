package service

import (
	"testing"

	"micro_tutor_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateExerciseCorrect(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := NewExerciseService(newGamificationService(db), &stubGenerator{})

	result, err := svc.Evaluate(userID, "写一个函数", "func add(a, b int) int { return a + b }", "ok")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, XPExerciseComplete, result.XPEarned)
	require.NotNil(t, result.Streak)
	assert.Equal(t, 1, result.Streak.CurrentStreak)

	progress, err := svc.Gamification.GetProgress(userID)
	require.NoError(t, err)
	assert.Equal(t, XPExerciseComplete, progress.TotalXP)
}

func TestEvaluateExerciseIncorrectNoXP(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := NewExerciseService(newGamificationService(db), &stubGenerator{})

	result, err := svc.Evaluate(userID, "写一个函数", "bad", "")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Zero(t, result.XPEarned)
	assert.Nil(t, result.Streak)

	progress, err := svc.Gamification.GetProgress(userID)
	require.NoError(t, err)
	assert.Zero(t, progress.TotalXP)
}
