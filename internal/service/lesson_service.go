package service

import (
	"encoding/json"
	"errors"
	"time"

	"micro_tutor_backend/internal/model"
	"micro_tutor_backend/internal/repository"
	"micro_tutor_backend/internal/util"
	"micro_tutor_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LessonService 课程内容生成与完课流程
type LessonService struct {
	LessonRepo   *repository.LessonRepository
	SkillRepo    *repository.SkillRepository
	CardRepo     *repository.ReviewCardRepository
	Gamification *GamificationService
	AI           ContentGenerator
}

func NewLessonService(lessonRepo *repository.LessonRepository, skillRepo *repository.SkillRepository, cardRepo *repository.ReviewCardRepository, gamification *GamificationService, ai ContentGenerator) *LessonService {
	return &LessonService{
		LessonRepo:   lessonRepo,
		SkillRepo:    skillRepo,
		CardRepo:     cardRepo,
		Gamification: gamification,
		AI:           ai,
	}
}

type LessonPayload struct {
	Lesson  *model.Lesson  `json:"lesson"`
	Content *LessonContent `json:"content,omitempty"`
}

// GenerateLesson 为占位课程生成正文。已生成过的直接返回已有内容，
// 生成时把之前已完成的课题喂给AI，避免内容重复
func (s *LessonService) GenerateLesson(lessonID uint) (*LessonPayload, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	if lesson.ContentJSON != "" {
		var content LessonContent
		if err := json.Unmarshal([]byte(lesson.ContentJSON), &content); err == nil {
			return &LessonPayload{Lesson: lesson, Content: &content}, nil
		}
	}

	skill, err := s.SkillRepo.FindByID(lesson.SkillID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}

	previousTopics, err := s.LessonRepo.FindCompletedTopicsBefore(lesson.SkillID, lesson.OrderIndex)
	if err != nil {
		return nil, err
	}

	content, err := s.AI.GenerateLesson(skill.Name, lesson.Topic, lesson.Difficulty, previousTopics)
	if err != nil {
		return nil, err
	}

	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	lesson.ContentJSON = string(contentJSON)
	if content.Summary != "" {
		lesson.Summary = content.Summary
	}
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return &LessonPayload{Lesson: lesson, Content: content}, nil
}

func (s *LessonService) GetLesson(lessonID uint) (*LessonPayload, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	payload := &LessonPayload{Lesson: lesson}
	if lesson.ContentJSON != "" {
		var content LessonContent
		if err := json.Unmarshal([]byte(lesson.ContentJSON), &content); err == nil {
			payload.Content = &content
		}
	}
	return payload, nil
}

type CompleteLessonResult struct {
	AlreadyCompleted bool             `json:"already_completed"`
	XPEarned         int              `json:"xp_earned"`
	CardsCreated     int              `json:"cards_created"`
	Streak           *StreakResult    `json:"streak,omitempty"`
	NewAchievements  []AchievementDef `json:"new_achievements"`
}

// CompleteLesson 完课入账。重复完成同一节课不再给经验，
// 首次完成时记经验、更新连击，并从课程内容提炼复习卡片入队
func (s *LessonService) CompleteLesson(userID, lessonID uint, timeSpentSeconds int) (*CompleteLessonResult, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	if lesson.Status == model.LessonCompleted {
		return &CompleteLessonResult{AlreadyCompleted: true, NewAchievements: []AchievementDef{}}, nil
	}

	now := time.Now()
	lesson.Status = model.LessonCompleted
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	attempt := &model.LessonAttempt{
		UserID:           userID,
		LessonID:         lessonID,
		CompletedAt:      &now,
		TimeSpentSeconds: timeSpentSeconds,
	}
	if err := s.LessonRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	if err := s.Gamification.RecordLessonCompleted(userID); err != nil {
		return nil, err
	}
	xpResult, err := s.Gamification.AwardActivity(userID, "lesson", XPLessonComplete)
	if err != nil {
		return nil, err
	}
	streak, err := s.Gamification.UpdateStreak(userID)
	if err != nil {
		return nil, err
	}

	cardsCreated := s.createReviewCards(userID, lesson, now)

	newAchievements, err := s.Gamification.CheckAchievements(userID)
	if err != nil {
		return nil, err
	}

	return &CompleteLessonResult{
		XPEarned:        xpResult.XPAdded,
		CardsCreated:    cardsCreated,
		Streak:          streak,
		NewAchievements: newAchievements,
	}, nil
}

// createReviewCards 完课时生成复习卡片，立即到期可复习。
// 卡片是锦上添花，生成失败只记日志不影响完课
func (s *LessonService) createReviewCards(userID uint, lesson *model.Lesson, now time.Time) int {
	if lesson.ContentJSON == "" {
		return 0
	}
	var content LessonContent
	if err := json.Unmarshal([]byte(lesson.ContentJSON), &content); err != nil {
		return 0
	}

	drafts, err := s.AI.GenerateReviewCards(&content)
	if err != nil {
		logger.Log.Warn("生成复习卡片失败", zap.Uint("lessonId", lesson.ID), zap.Error(err))
		return 0
	}

	cards := make([]model.ReviewCard, 0, len(drafts))
	for _, draft := range drafts {
		if draft.Question == "" || draft.Answer == "" {
			continue
		}
		cards = append(cards, model.ReviewCard{
			UserID:       userID,
			LessonID:     lesson.ID,
			Question:     draft.Question,
			Answer:       draft.Answer,
			EaseFactor:   2.5,
			IntervalDays: 1,
			NextReviewAt: now,
		})
	}
	if err := s.CardRepo.CreateBatch(cards); err != nil {
		logger.Log.Warn("保存复习卡片失败", zap.Uint("lessonId", lesson.ID), zap.Error(err))
		return 0
	}
	return len(cards)
}
