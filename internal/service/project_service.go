package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"micro_tutor_backend/internal/model"
	"micro_tutor_backend/internal/repository"
	"micro_tutor_backend/internal/util"

	"gorm.io/gorm"
)

// 技能名里出现这些词就按编码项目出题，否则按文字项目
var codingKeywords = []string{
	"编程", "开发", "程序", "代码", "算法",
	"python", "go", "golang", "java", "javascript", "typescript",
	"rust", "c++", "sql", "html", "css", "react", "vue", "linux",
	"docker", "kubernetes", "git", "api", "web",
}

// ProjectService 结业项目的生成、提交与评审
type ProjectService struct {
	ProjectRepo  *repository.ProjectRepository
	SkillRepo    *repository.SkillRepository
	LessonRepo   *repository.LessonRepository
	Gamification *GamificationService
	AI           ContentGenerator
}

func NewProjectService(projectRepo *repository.ProjectRepository, skillRepo *repository.SkillRepository, lessonRepo *repository.LessonRepository, gamification *GamificationService, ai ContentGenerator) *ProjectService {
	return &ProjectService{
		ProjectRepo:  projectRepo,
		SkillRepo:    skillRepo,
		LessonRepo:   lessonRepo,
		Gamification: gamification,
		AI:           ai,
	}
}

func inferSubmissionType(skillName string) string {
	lower := strings.ToLower(skillName)
	for _, keyword := range codingKeywords {
		if strings.Contains(lower, keyword) {
			return "code"
		}
	}
	return "text"
}

type ProjectPayload struct {
	ProjectID uint          `json:"project_id"`
	SkillID   uint          `json:"skill_id"`
	Brief     *ProjectBrief `json:"brief"`
}

// GetOrGenerateProject 取技能的结业项目，没有就现生成一个。
// 项目说明基于大纲和各节课完成情况，让AI出贴合进度的题
func (s *ProjectService) GetOrGenerateProject(skillID uint) (*ProjectPayload, error) {
	skill, err := s.SkillRepo.FindByID(skillID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}

	existing, err := s.ProjectRepo.FindLatestBySkillID(skillID)
	if err == nil {
		var brief ProjectBrief
		if err := json.Unmarshal([]byte(existing.DescriptionJSON), &brief); err != nil {
			return nil, err
		}
		if brief.SubmissionType == "" {
			brief.SubmissionType = inferSubmissionType(skill.Name)
		}
		return &ProjectPayload{ProjectID: existing.ID, SkillID: skillID, Brief: &brief}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	lessons, err := s.LessonRepo.FindBySkillID(skillID)
	if err != nil {
		return nil, err
	}
	var topics strings.Builder
	for _, lesson := range lessons {
		status := "未完成"
		if lesson.Status == model.LessonCompleted {
			status = "已完成"
		}
		fmt.Fprintf(&topics, "- %s（%s）\n", lesson.Topic, status)
	}

	overview := skill.Description
	if skill.CurriculumJSON != "" {
		overview = skill.CurriculumJSON
	}

	submissionType := inferSubmissionType(skill.Name)
	brief, err := s.AI.GenerateProjectBrief(skill.Name, overview, topics.String(), submissionType)
	if err != nil {
		return nil, err
	}

	briefJSON, err := json.Marshal(brief)
	if err != nil {
		return nil, err
	}
	project := &model.SkillProject{SkillID: skillID, DescriptionJSON: string(briefJSON)}
	if err := s.ProjectRepo.Create(project); err != nil {
		return nil, err
	}
	return &ProjectPayload{ProjectID: project.ID, SkillID: skillID, Brief: brief}, nil
}

type SubmitProjectResult struct {
	Evaluation *ProjectEvaluation `json:"evaluation"`
	XPEarned   int                `json:"xp_earned"`
	Streak     *StreakResult      `json:"streak,omitempty"`
}

// SubmitProject 提交项目给AI评审。通过奖励每个项目只发一次，
// 重复提交仍给评审意见但不再给经验
func (s *ProjectService) SubmitProject(userID, projectID uint, submission string) (*SubmitProjectResult, error) {
	project, err := s.ProjectRepo.FindByID(projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	skill, err := s.SkillRepo.FindByID(project.SkillID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}
	var brief ProjectBrief
	if err := json.Unmarshal([]byte(project.DescriptionJSON), &brief); err != nil {
		return nil, err
	}

	evaluation, err := s.AI.EvaluateProject(skill.Name, &brief, submission)
	if err != nil {
		return nil, err
	}

	result := &SubmitProjectResult{Evaluation: evaluation}
	if evaluation.Passed {
		alreadyPassed, err := s.ProjectRepo.HasPassedSubmission(userID, projectID)
		if err != nil {
			return nil, err
		}
		if !alreadyPassed {
			if _, err := s.Gamification.AwardActivity(userID, "project", XPProjectPass); err != nil {
				return nil, err
			}
			streak, err := s.Gamification.UpdateStreak(userID)
			if err != nil {
				return nil, err
			}
			result.XPEarned = XPProjectPass
			result.Streak = streak
		}
	}

	feedbackJSON, err := json.Marshal(evaluation)
	if err != nil {
		return nil, err
	}
	record := &model.ProjectSubmission{
		UserID:       userID,
		ProjectID:    projectID,
		Submission:   submission,
		FeedbackJSON: string(feedbackJSON),
		XPEarned:     result.XPEarned,
		Passed:       evaluation.Passed,
		CompletedAt:  time.Now(),
	}
	if err := s.ProjectRepo.CreateSubmission(record); err != nil {
		return nil, err
	}
	return result, nil
}

type SubmissionHistoryItem struct {
	ID          uint               `json:"id"`
	Passed      bool               `json:"passed"`
	XPEarned    int                `json:"xp_earned"`
	CompletedAt time.Time          `json:"completed_at"`
	Evaluation  *ProjectEvaluation `json:"evaluation,omitempty"`
}

func (s *ProjectService) GetSubmissionHistory(userID, projectID uint) ([]SubmissionHistoryItem, error) {
	submissions, err := s.ProjectRepo.FindSubmissions(userID, projectID)
	if err != nil {
		return nil, err
	}
	items := make([]SubmissionHistoryItem, 0, len(submissions))
	for _, sub := range submissions {
		item := SubmissionHistoryItem{
			ID:          sub.ID,
			Passed:      sub.Passed,
			XPEarned:    sub.XPEarned,
			CompletedAt: sub.CompletedAt,
		}
		if sub.FeedbackJSON != "" {
			var evaluation ProjectEvaluation
			if err := json.Unmarshal([]byte(sub.FeedbackJSON), &evaluation); err == nil {
				item.Evaluation = &evaluation
			}
		}
		items = append(items, item)
	}
	return items, nil
}
