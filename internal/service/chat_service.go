package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"micro_tutor_backend/internal/model"
	"micro_tutor_backend/internal/repository"

	"gorm.io/gorm"
)

// 注入给AI的历史轮数上限，再多就超上下文了
const chatHistoryLimit = 20

// ChatService 导师问答，按技能维度保存对话历史
type ChatService struct {
	ChatRepo  *repository.ChatRepository
	SkillRepo *repository.SkillRepository
	AI        ContentGenerator
}

func NewChatService(chatRepo *repository.ChatRepository, skillRepo *repository.SkillRepository, ai ContentGenerator) *ChatService {
	return &ChatService{ChatRepo: chatRepo, SkillRepo: skillRepo, AI: ai}
}

// buildSkillContext 拼出当前技能的背景，让导师回答贴合学习内容
func (s *ChatService) buildSkillContext(skillID uint) string {
	skill, err := s.SkillRepo.FindByID(skillID)
	if err != nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "正在学习的技能：%s\n", skill.Name)
	if skill.Description != "" {
		fmt.Fprintf(&sb, "技能简介：%s\n", skill.Description)
	}
	if skill.CurriculumJSON != "" {
		var topics []CurriculumTopic
		if err := json.Unmarshal([]byte(skill.CurriculumJSON), &topics); err == nil {
			sb.WriteString("课程大纲：")
			for i, topic := range topics {
				if i > 0 {
					sb.WriteString("、")
				}
				sb.WriteString(topic.Title)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

type ChatResult struct {
	Reply string `json:"reply"`
}

// Chat 发起一轮对话。带skillID时注入技能背景并持久化问答两条消息，
// 历史从库里取最近若干轮，不依赖客户端回传
func (s *ChatService) Chat(userID uint, skillID *uint, lessonID *uint, message string) (*ChatResult, error) {
	skillContext := ""
	history := []AIChatMessage{}

	if skillID != nil {
		skillContext = s.buildSkillContext(*skillID)
		stored, err := s.ChatRepo.FindBySkill(userID, *skillID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if len(stored) > chatHistoryLimit {
			stored = stored[len(stored)-chatHistoryLimit:]
		}
		for _, msg := range stored {
			history = append(history, AIChatMessage{Role: msg.Role, Content: msg.Content})
		}
	}

	messages := append(history, AIChatMessage{Role: "user", Content: message})
	reply, err := s.AI.Chat(messages, skillContext)
	if err != nil {
		return nil, err
	}

	if skillID != nil {
		userMsg := &model.ChatMessage{UserID: userID, SkillID: skillID, LessonID: lessonID, Role: "user", Content: message}
		if err := s.ChatRepo.Create(userMsg); err != nil {
			return nil, err
		}
		assistantMsg := &model.ChatMessage{UserID: userID, SkillID: skillID, LessonID: lessonID, Role: "assistant", Content: reply}
		if err := s.ChatRepo.Create(assistantMsg); err != nil {
			return nil, err
		}
	}
	return &ChatResult{Reply: reply}, nil
}

func (s *ChatService) GetHistory(userID, skillID uint) ([]model.ChatMessage, error) {
	return s.ChatRepo.FindBySkill(userID, skillID)
}
