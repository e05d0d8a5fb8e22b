package service

import (
	"encoding/json"
	"errors"

	"micro_tutor_backend/internal/model"
	"micro_tutor_backend/internal/repository"
	"micro_tutor_backend/internal/util"

	"gorm.io/gorm"
)

// QuizService 测验生成、判题与成绩入账
type QuizService struct {
	QuizRepo     *repository.QuizRepository
	LessonRepo   *repository.LessonRepository
	Gamification *GamificationService
	AI           ContentGenerator
}

func NewQuizService(quizRepo *repository.QuizRepository, lessonRepo *repository.LessonRepository, gamification *GamificationService, ai ContentGenerator) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		LessonRepo:   lessonRepo,
		Gamification: gamification,
		AI:           ai,
	}
}

type QuizPayload struct {
	QuizID    uint           `json:"quiz_id"`
	LessonID  uint           `json:"lesson_id"`
	Questions []QuizQuestion `json:"questions"`
}

// GenerateQuiz 针对一节课出一套新题并落库
func (s *QuizService) GenerateQuiz(lessonID uint) (*QuizPayload, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	if lesson.ContentJSON == "" {
		return nil, util.ErrNoLessonContent
	}
	var content LessonContent
	if err := json.Unmarshal([]byte(lesson.ContentJSON), &content); err != nil {
		return nil, err
	}

	questions, err := s.AI.GenerateQuiz(&content, lesson.Difficulty)
	if err != nil {
		return nil, err
	}

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}
	quiz := &model.Quiz{LessonID: lessonID, QuestionsJSON: string(questionsJSON)}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return &QuizPayload{QuizID: quiz.ID, LessonID: lessonID, Questions: questions}, nil
}

// GetQuiz 取该课最新一套测验
func (s *QuizService) GetQuiz(lessonID uint) (*QuizPayload, error) {
	quiz, err := s.QuizRepo.FindLatestByLessonID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(quiz.QuestionsJSON), &questions); err != nil {
		return nil, err
	}
	return &QuizPayload{QuizID: quiz.ID, LessonID: quiz.LessonID, Questions: questions}, nil
}

// GradeAnswer 简答题由AI判卷，单选题前端就地比对不走这里
func (s *QuizService) GradeAnswer(question QuizQuestion, answer string) (*GradeResult, error) {
	return s.AI.GradeAnswer(question, answer)
}

// AnswerRecord 提交时每道题的作答结果
type AnswerRecord struct {
	Answer  string `json:"answer"`
	Correct bool   `json:"correct"`
}

type SubmitQuizResult struct {
	Score           float64          `json:"score"`
	CorrectCount    int              `json:"correct_count"`
	TotalQuestions  int              `json:"total_questions"`
	XPEarned        int              `json:"xp_earned"`
	Streak          *StreakResult    `json:"streak,omitempty"`
	NewAchievements []AchievementDef `json:"new_achievements"`
}

// SubmitQuiz 汇总一次测验成绩并入账。
// 每答对一题20经验，全对再加50并解锁满分成就
func (s *QuizService) SubmitQuiz(userID, quizID uint, answers map[string]AnswerRecord) (*SubmitQuizResult, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(quiz.QuestionsJSON), &questions); err != nil {
		return nil, err
	}

	total := len(questions)
	correct := 0
	for _, record := range answers {
		if record.Correct {
			correct++
		}
	}
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total)
	}
	perfect := total > 0 && correct == total

	xp := correct * XPCorrectAnswer
	if perfect {
		xp += XPPerfectQuiz
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	attempt := &model.QuizAttempt{
		UserID:      userID,
		QuizID:      quizID,
		AnswersJSON: string(answersJSON),
		Score:       score,
		XPEarned:    xp,
	}
	if err := s.QuizRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	if err := s.Gamification.RecordQuizCompleted(userID); err != nil {
		return nil, err
	}
	if xp > 0 {
		if _, err := s.Gamification.AwardActivity(userID, "quiz", xp); err != nil {
			return nil, err
		}
	}
	streak, err := s.Gamification.UpdateStreak(userID)
	if err != nil {
		return nil, err
	}

	newAchievements := []AchievementDef{}
	if perfect {
		def, err := s.Gamification.UnlockSpecial(userID, "perfect_score")
		if err != nil {
			return nil, err
		}
		if def != nil {
			newAchievements = append(newAchievements, *def)
		}
	}
	checked, err := s.Gamification.CheckAchievements(userID)
	if err != nil {
		return nil, err
	}
	newAchievements = append(newAchievements, checked...)

	return &SubmitQuizResult{
		Score:           score,
		CorrectCount:    correct,
		TotalQuestions:  total,
		XPEarned:        xp,
		Streak:          streak,
		NewAchievements: newAchievements,
	}, nil
}
