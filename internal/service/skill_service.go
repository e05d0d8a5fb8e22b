package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"micro_tutor_backend/internal/model"
	"micro_tutor_backend/internal/repository"
	"micro_tutor_backend/internal/util"
	"micro_tutor_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	curriculumCacheTTL = 24 * time.Hour
	multiSkillCount    = 3
)

// SkillService 技能与大纲管理
type SkillService struct {
	SkillRepo    *repository.SkillRepository
	LessonRepo   *repository.LessonRepository
	Gamification *GamificationService
	AI           ContentGenerator
	Redis        *redis.Client // 可为nil，未启用缓存时每次预览都调AI
}

func NewSkillService(skillRepo *repository.SkillRepository, lessonRepo *repository.LessonRepository, gamification *GamificationService, ai ContentGenerator, rdb *redis.Client) *SkillService {
	return &SkillService{
		SkillRepo:    skillRepo,
		LessonRepo:   lessonRepo,
		Gamification: gamification,
		AI:           ai,
		Redis:        rdb,
	}
}

// PreviewCurriculum 生成课程大纲预览，不落库。
// 预览到确认创建之间用户可能反复刷新，同名技能的大纲走Redis缓存
func (s *SkillService) PreviewCurriculum(name string) (*CurriculumPreview, error) {
	cacheKey := "curriculum:preview:" + strings.ToLower(strings.TrimSpace(name))

	if s.Redis != nil {
		cached, err := s.Redis.Get(context.Background(), cacheKey).Result()
		if err == nil {
			var preview CurriculumPreview
			if err := json.Unmarshal([]byte(cached), &preview); err == nil {
				return &preview, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("读取大纲缓存失败", zap.Error(err))
		}
	}

	preview, err := s.AI.GenerateCurriculum(name)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(preview); err == nil {
			if err := s.Redis.Set(context.Background(), cacheKey, data, curriculumCacheTTL).Err(); err != nil {
				logger.Log.Warn("写入大纲缓存失败", zap.Error(err))
			}
		}
	}
	return preview, nil
}

type CreateSkillResult struct {
	Skill           *model.Skill     `json:"skill"`
	Lessons         []model.Lesson   `json:"lessons"`
	NewAchievements []AchievementDef `json:"new_achievements"`
}

// CreateSkill 确认大纲后创建技能，并为每个主题建一节占位课程。
// 课程内容此时不生成，学到哪节生成哪节
func (s *SkillService) CreateSkill(userID uint, name, description string, difficulty int, curriculum []CurriculumTopic) (*CreateSkillResult, error) {
	if difficulty < 1 || difficulty > 5 {
		difficulty = 2
	}
	curriculumJSON, err := json.Marshal(curriculum)
	if err != nil {
		return nil, err
	}

	skill := &model.Skill{
		UserID:          userID,
		Name:            name,
		Description:     description,
		DifficultyLevel: difficulty,
		CurriculumJSON:  string(curriculumJSON),
		IsActive:        true,
	}
	lessons := make([]model.Lesson, 0, len(curriculum))

	err = s.SkillRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(skill).Error; err != nil {
			return err
		}
		for i, topic := range curriculum {
			lesson := model.Lesson{
				SkillID:          skill.ID,
				Topic:            topic.Title,
				OrderIndex:       i,
				Summary:          topic.Description,
				Difficulty:       difficulty,
				EstimatedMinutes: 15,
				Status:           model.LessonAvailable,
			}
			if err := tx.Create(&lesson).Error; err != nil {
				return err
			}
			lessons = append(lessons, lesson)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &CreateSkillResult{Skill: skill, Lessons: lessons, NewAchievements: []AchievementDef{}}

	count, err := s.SkillRepo.CountActiveByUserID(userID)
	if err != nil {
		return nil, err
	}
	if count >= multiSkillCount {
		def, err := s.Gamification.UnlockSpecial(userID, "multi_skill")
		if err != nil {
			return nil, err
		}
		if def != nil {
			result.NewAchievements = append(result.NewAchievements, *def)
		}
	}
	return result, nil
}

func (s *SkillService) GetSkills(userID uint) ([]repository.SkillWithCounts, error) {
	return s.SkillRepo.FindActiveByUserID(userID)
}

type SkillDetail struct {
	Skill   *model.Skill   `json:"skill"`
	Lessons []model.Lesson `json:"lessons"`
}

func (s *SkillService) GetSkillDetail(skillID uint) (*SkillDetail, error) {
	skill, err := s.SkillRepo.FindByID(skillID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}
	lessons, err := s.LessonRepo.FindBySkillID(skillID)
	if err != nil {
		return nil, err
	}
	return &SkillDetail{Skill: skill, Lessons: lessons}, nil
}

// DeleteSkill 删除技能及其课程、测验、复习卡等全部派生数据。
// 已入账的经验和成就保留
func (s *SkillService) DeleteSkill(skillID uint) error {
	_, err := s.SkillRepo.FindByID(skillID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrSkillNotFound
	}
	if err != nil {
		return err
	}
	return s.SkillRepo.DeleteCascade(skillID)
}

// GetCheatSheet 取速查表，没有或强制刷新时汇总已生成课程现做一份。
// 一节课都没生成时无从汇总，返回ErrNoLessonContent
func (s *SkillService) GetCheatSheet(skillID uint, force bool) (string, error) {
	skill, err := s.SkillRepo.FindByID(skillID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", util.ErrSkillNotFound
	}
	if err != nil {
		return "", err
	}
	if skill.Cheatsheet != "" && !force {
		return skill.Cheatsheet, nil
	}

	lessons, err := s.LessonRepo.FindGeneratedBySkillID(skillID)
	if err != nil {
		return "", err
	}
	if len(lessons) == 0 {
		return "", util.ErrNoLessonContent
	}

	var summaries strings.Builder
	for _, lesson := range lessons {
		fmt.Fprintf(&summaries, "## %s\n%s\n", lesson.Topic, lesson.Summary)
		var content LessonContent
		if err := json.Unmarshal([]byte(lesson.ContentJSON), &content); err == nil {
			for _, point := range content.KeyPoints {
				fmt.Fprintf(&summaries, "- %s\n", point)
			}
		}
		summaries.WriteString("\n")
	}

	sheet, err := s.AI.GenerateCheatSheet(skill.Name, summaries.String())
	if err != nil {
		return "", err
	}
	skill.Cheatsheet = sheet
	if err := s.SkillRepo.Update(skill); err != nil {
		return "", err
	}
	return sheet, nil
}
