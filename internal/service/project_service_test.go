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

func newProjectService(db *gorm.DB, ai ContentGenerator) *ProjectService {
	return NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewSkillRepository(db),
		repository.NewLessonRepository(db),
		newGamificationService(db),
		ai,
	)
}

func TestInferSubmissionType(t *testing.T) {
	assert.Equal(t, "code", inferSubmissionType("Python编程"))
	assert.Equal(t, "code", inferSubmissionType("Docker入门"))
	assert.Equal(t, "text", inferSubmissionType("西班牙语"))
	assert.Equal(t, "text", inferSubmissionType("摄影基础"))
}

func TestGetOrGenerateProjectReusesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newProjectService(db, &stubGenerator{})
	skill, _ := seedSkillWithLessons(t, db, userID, "变量", "函数")

	first, err := svc.GetOrGenerateProject(skill.ID)
	require.NoError(t, err)
	assert.NotZero(t, first.ProjectID)
	assert.NotEmpty(t, first.Brief.Title)

	// 第二次取同一个项目，不再调AI
	svc.AI = &stubGenerator{failAll: true}
	second, err := svc.GetOrGenerateProject(skill.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ProjectID, second.ProjectID)
}

func TestGetOrGenerateProjectUnknownSkill(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedUser(t, db)
	svc := newProjectService(db, &stubGenerator{})

	_, err := svc.GetOrGenerateProject(9999)
	assert.ErrorIs(t, err, util.ErrSkillNotFound)
}

func TestSubmitProjectPassAwardsOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newProjectService(db, &stubGenerator{})
	skill, _ := seedSkillWithLessons(t, db, userID, "变量")

	project, err := svc.GetOrGenerateProject(skill.ID)
	require.NoError(t, err)

	first, err := svc.SubmitProject(userID, project.ProjectID, "我的作品")
	require.NoError(t, err)
	assert.True(t, first.Evaluation.Passed)
	assert.Equal(t, XPProjectPass, first.XPEarned)

	// 再次通过不重复发奖励
	second, err := svc.SubmitProject(userID, project.ProjectID, "改进后的作品")
	require.NoError(t, err)
	assert.True(t, second.Evaluation.Passed)
	assert.Zero(t, second.XPEarned)

	progress, err := svc.Gamification.GetProgress(userID)
	require.NoError(t, err)
	assert.Equal(t, XPProjectPass, progress.TotalXP)

	history, err := svc.GetSubmissionHistory(userID, project.ProjectID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSubmitProjectFailedNoXP(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newProjectService(db, &stubGenerator{})
	skill, _ := seedSkillWithLessons(t, db, userID, "变量")

	project, err := svc.GetOrGenerateProject(skill.ID)
	require.NoError(t, err)

	result, err := svc.SubmitProject(userID, project.ProjectID, "bad")
	require.NoError(t, err)
	assert.False(t, result.Evaluation.Passed)
	assert.Zero(t, result.XPEarned)

	var stored model.ProjectSubmission
	require.NoError(t, db.Where("project_id = ?", project.ProjectID).First(&stored).Error)
	assert.False(t, stored.Passed)
}

func TestSubmitProjectUnknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newProjectService(db, &stubGenerator{})

	_, err := svc.SubmitProject(userID, 9999, "作品")
	assert.ErrorIs(t, err, util.ErrProjectNotFound)
}
