package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"micro_tutor_backend/internal/config"
)

// TutorService 调用OpenAI兼容接口生成教学内容，是ContentGenerator的生产实现。
type TutorService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewTutorService(cfg config.AIConfig) *TutorService {
	return &TutorService{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// UpdateConfig 配置热更新时替换AI接入参数，进行中的请求不受影响
func (s *TutorService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

type chatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// complete 发起一次对话补全，返回模型的完整回复文本
func (s *TutorService) complete(messages []AIChatMessage) (string, error) {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	reqBody := chatCompletionRequest{
		Model:    cfg.Model,
		Messages: messages,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("AI API returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

func (s *TutorService) completePrompt(prompt string) (string, error) {
	return s.complete([]AIChatMessage{{Role: "user", Content: prompt}})
}

// extractJSON 剥掉模型回复里的Markdown代码围栏，返回可直接解析的JSON文本
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}
	// 模型偶尔在JSON前后加说明文字，截取最外层的大括号或中括号
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	var end int
	if text[start] == '{' {
		end = strings.LastIndex(text, "}")
	} else {
		end = strings.LastIndex(text, "]")
	}
	if end <= start {
		return text
	}
	return text[start : end+1]
}

func (s *TutorService) GenerateCurriculum(skillName string) (*CurriculumPreview, error) {
	raw, err := s.completePrompt(fmt.Sprintf(curriculumPrompt, skillName))
	if err != nil {
		return nil, err
	}
	var preview CurriculumPreview
	if err := json.Unmarshal([]byte(extractJSON(raw)), &preview); err != nil {
		return nil, fmt.Errorf("parse curriculum response: %w", err)
	}
	if preview.Name == "" {
		preview.Name = skillName
	}
	return &preview, nil
}

func (s *TutorService) GenerateLesson(skillName, topic string, difficulty int, previousTopics []string) (*LessonContent, error) {
	previous := "（这是第一节课）"
	if len(previousTopics) > 0 {
		previous = strings.Join(previousTopics, "、")
	}
	raw, err := s.completePrompt(fmt.Sprintf(lessonPrompt, skillName, topic, difficulty, previous))
	if err != nil {
		return nil, err
	}
	var content LessonContent
	if err := json.Unmarshal([]byte(extractJSON(raw)), &content); err != nil {
		return nil, fmt.Errorf("parse lesson response: %w", err)
	}
	return &content, nil
}

func (s *TutorService) GenerateQuiz(content *LessonContent, difficulty int) ([]QuizQuestion, error) {
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	raw, err := s.completePrompt(fmt.Sprintf(quizPrompt, difficulty, string(contentJSON)))
	if err != nil {
		return nil, err
	}
	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(extractJSON(raw)), &questions); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}
	return questions, nil
}

func (s *TutorService) GradeAnswer(question QuizQuestion, answer string) (*GradeResult, error) {
	raw, err := s.completePrompt(fmt.Sprintf(gradeAnswerPrompt, question.Question, question.CorrectAnswer, answer))
	if err != nil {
		return nil, err
	}
	var result GradeResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		return nil, fmt.Errorf("parse grading response: %w", err)
	}
	return &result, nil
}

func (s *TutorService) GenerateReviewCards(content *LessonContent) ([]ReviewCardDraft, error) {
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	raw, err := s.completePrompt(fmt.Sprintf(reviewCardsPrompt, string(contentJSON)))
	if err != nil {
		return nil, err
	}
	var cards []ReviewCardDraft
	if err := json.Unmarshal([]byte(extractJSON(raw)), &cards); err != nil {
		return nil, fmt.Errorf("parse review cards response: %w", err)
	}
	return cards, nil
}

func (s *TutorService) GenerateCheatSheet(skillName, lessonSummaries string) (string, error) {
	raw, err := s.completePrompt(fmt.Sprintf(cheatSheetPrompt, skillName, lessonSummaries))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (s *TutorService) GenerateProjectBrief(skillName, curriculumOverview, lessonTopics, submissionType string) (*ProjectBrief, error) {
	raw, err := s.completePrompt(fmt.Sprintf(projectBriefPrompt, skillName, curriculumOverview, lessonTopics, submissionType))
	if err != nil {
		return nil, err
	}
	var brief ProjectBrief
	if err := json.Unmarshal([]byte(extractJSON(raw)), &brief); err != nil {
		return nil, fmt.Errorf("parse project brief response: %w", err)
	}
	if brief.SubmissionType == "" {
		brief.SubmissionType = submissionType
	}
	return &brief, nil
}

func (s *TutorService) EvaluateProject(skillName string, brief *ProjectBrief, submission string) (*ProjectEvaluation, error) {
	briefJSON, err := json.Marshal(brief)
	if err != nil {
		return nil, err
	}
	raw, err := s.completePrompt(fmt.Sprintf(projectEvalPrompt, skillName, string(briefJSON), submission))
	if err != nil {
		return nil, err
	}
	var eval ProjectEvaluation
	if err := json.Unmarshal([]byte(extractJSON(raw)), &eval); err != nil {
		return nil, fmt.Errorf("parse project evaluation response: %w", err)
	}
	return &eval, nil
}

func (s *TutorService) EvaluateExercise(exercise, submission, output string) (*ExerciseEvaluation, error) {
	if output == "" {
		output = "（无输出）"
	}
	raw, err := s.completePrompt(fmt.Sprintf(exerciseEvalPrompt, exercise, submission, output))
	if err != nil {
		return nil, err
	}
	var eval ExerciseEvaluation
	if err := json.Unmarshal([]byte(extractJSON(raw)), &eval); err != nil {
		return nil, fmt.Errorf("parse exercise evaluation response: %w", err)
	}
	return &eval, nil
}

// Chat 自由问答。skillContext非空时注入技能背景，让回答贴合当前学习内容
func (s *TutorService) Chat(messages []AIChatMessage, skillContext string) (string, error) {
	system := chatSystemPrompt
	if skillContext != "" {
		system = fmt.Sprintf("%s\n\n学员当前的学习背景：\n%s", chatSystemPrompt, skillContext)
	}
	full := make([]AIChatMessage, 0, len(messages)+1)
	full = append(full, AIChatMessage{Role: "system", Content: system})
	full = append(full, messages...)
	return s.complete(full)
}
