package service

import (
	"testing"

	"micro_tutor_backend/internal/model"
	"micro_tutor_backend/internal/repository"
	"micro_tutor_backend/internal/testutil"
	"micro_tutor_backend/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSkillService(db *gorm.DB, ai ContentGenerator) *SkillService {
	return NewSkillService(
		repository.NewSkillRepository(db),
		repository.NewLessonRepository(db),
		newGamificationService(db),
		ai,
		nil, // 测试不走Redis缓存
	)
}

func TestPreviewCurriculumWithoutCache(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedUser(t, db)
	svc := newSkillService(db, &stubGenerator{})

	preview, err := svc.PreviewCurriculum("Go编程")
	require.NoError(t, err)
	assert.Equal(t, "Go编程", preview.Name)
	assert.Len(t, preview.Curriculum, 2)
}

func TestPreviewCurriculumCacheHit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedUser(t, db)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	stub := &stubGenerator{}
	svc := newSkillService(db, stub)
	svc.Redis = rdb

	first, err := svc.PreviewCurriculum("Go编程")
	require.NoError(t, err)
	assert.Equal(t, 1, stub.curriculumCalls)

	// 同名技能（忽略大小写和首尾空白）命中缓存，不再调生成器
	second, err := svc.PreviewCurriculum("  go编程 ")
	require.NoError(t, err)
	assert.Equal(t, 1, stub.curriculumCalls)
	assert.Equal(t, first.Curriculum, second.Curriculum)

	_, err = svc.PreviewCurriculum("Rust编程")
	require.NoError(t, err)
	assert.Equal(t, 2, stub.curriculumCalls)
}

func TestCreateSkillBuildsLessonStubs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newSkillService(db, &stubGenerator{})

	curriculum := []CurriculumTopic{
		{Title: "入门", Description: "基础"},
		{Title: "进阶", Description: "深入"},
		{Title: "实战", Description: "动手"},
	}
	result, err := svc.CreateSkill(userID, "Go编程", "学Go", 2, curriculum)
	require.NoError(t, err)
	require.NotNil(t, result.Skill)
	assert.NotZero(t, result.Skill.ID)
	require.Len(t, result.Lessons, 3)

	for i, lesson := range result.Lessons {
		assert.Equal(t, curriculum[i].Title, lesson.Topic)
		assert.Equal(t, i, lesson.OrderIndex)
		assert.Equal(t, model.LessonAvailable, lesson.Status)
		assert.Empty(t, lesson.ContentJSON) // 内容延迟生成
	}
}

func TestCreateThirdSkillUnlocksMultiSkill(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newSkillService(db, &stubGenerator{})

	curriculum := []CurriculumTopic{{Title: "入门"}}
	for _, name := range []string{"技能一", "技能二"} {
		result, err := svc.CreateSkill(userID, name, "", 1, curriculum)
		require.NoError(t, err)
		assert.Empty(t, result.NewAchievements)
	}

	third, err := svc.CreateSkill(userID, "技能三", "", 1, curriculum)
	require.NoError(t, err)
	require.Len(t, third.NewAchievements, 1)
	assert.Equal(t, "multi_skill", third.NewAchievements[0].Key)

	// 第四个不再重复解锁
	fourth, err := svc.CreateSkill(userID, "技能四", "", 1, curriculum)
	require.NoError(t, err)
	assert.Empty(t, fourth.NewAchievements)
}

func TestGetSkillDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newSkillService(db, &stubGenerator{})
	skill, lessons := seedSkillWithLessons(t, db, userID, "变量", "函数")

	detail, err := svc.GetSkillDetail(skill.ID)
	require.NoError(t, err)
	assert.Equal(t, skill.Name, detail.Skill.Name)
	require.Len(t, detail.Lessons, len(lessons))
	assert.Equal(t, "变量", detail.Lessons[0].Topic)

	_, err = svc.GetSkillDetail(9999)
	assert.ErrorIs(t, err, util.ErrSkillNotFound)
}

func TestDeleteSkillCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newSkillService(db, &stubGenerator{})
	skill, lessons := seedSkillWithLessons(t, db, userID, "变量")

	card := model.ReviewCard{UserID: userID, LessonID: lessons[0].ID, Question: "问", Answer: "答", EaseFactor: 2.5, IntervalDays: 1}
	require.NoError(t, db.Create(&card).Error)

	require.NoError(t, svc.DeleteSkill(skill.ID))

	var lessonCount, cardCount int64
	require.NoError(t, db.Model(&model.Lesson{}).Where("skill_id = ?", skill.ID).Count(&lessonCount).Error)
	require.NoError(t, db.Model(&model.ReviewCard{}).Where("lesson_id = ?", lessons[0].ID).Count(&cardCount).Error)
	assert.Zero(t, lessonCount)
	assert.Zero(t, cardCount)

	assert.ErrorIs(t, svc.DeleteSkill(skill.ID), util.ErrSkillNotFound)
}

func TestGetCheatSheetRequiresContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newSkillService(db, &stubGenerator{})
	skill, _ := seedSkillWithLessons(t, db, userID, "变量")

	_, err := svc.GetCheatSheet(skill.ID, false)
	assert.ErrorIs(t, err, util.ErrNoLessonContent)
}

func TestGetCheatSheetGeneratesAndCaches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userID := testutil.SeedUser(t, db)
	svc := newSkillService(db, &stubGenerator{})
	skill, lessons := seedSkillWithLessons(t, db, userID, "变量")

	lessonSvc := newLessonService(db, &stubGenerator{})
	_, err := lessonSvc.GenerateLesson(lessons[0].ID)
	require.NoError(t, err)

	sheet, err := svc.GetCheatSheet(skill.ID, false)
	require.NoError(t, err)
	assert.Contains(t, sheet, "速查表")

	// 生成后缓存在列里，后续读取不再调AI
	svc.AI = &stubGenerator{failAll: true}
	cached, err := svc.GetCheatSheet(skill.ID, false)
	require.NoError(t, err)
	assert.Equal(t, sheet, cached)

	// force=true时必须重新生成
	_, err = svc.GetCheatSheet(skill.ID, true)
	assert.Error(t, err)
}
