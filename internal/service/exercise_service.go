package service

// ExerciseService 课内编码练习的AI批改与入账
type ExerciseService struct {
	Gamification *GamificationService
	AI           ContentGenerator
}

func NewExerciseService(gamification *GamificationService, ai ContentGenerator) *ExerciseService {
	return &ExerciseService{Gamification: gamification, AI: ai}
}

type EvaluateExerciseResult struct {
	Correct         bool             `json:"correct"`
	Feedback        string           `json:"feedback"`
	Hints           []string         `json:"hints"`
	XPEarned        int              `json:"xp_earned"`
	Streak          *StreakResult    `json:"streak,omitempty"`
	NewAchievements []AchievementDef `json:"new_achievements"`
}

// Evaluate 批改一次练习提交。练习不落库，做对给经验并更新连击
func (s *ExerciseService) Evaluate(userID uint, exercise, submission, output string) (*EvaluateExerciseResult, error) {
	evaluation, err := s.AI.EvaluateExercise(exercise, submission, output)
	if err != nil {
		return nil, err
	}

	result := &EvaluateExerciseResult{
		Correct:         evaluation.Correct,
		Feedback:        evaluation.Feedback,
		Hints:           evaluation.Hints,
		NewAchievements: []AchievementDef{},
	}
	if !evaluation.Correct {
		return result, nil
	}

	xpResult, err := s.Gamification.AwardActivity(userID, "exercise", XPExerciseComplete)
	if err != nil {
		return nil, err
	}
	streak, err := s.Gamification.UpdateStreak(userID)
	if err != nil {
		return nil, err
	}
	newAchievements, err := s.Gamification.CheckAchievements(userID)
	if err != nil {
		return nil, err
	}

	result.XPEarned = xpResult.XPAdded
	result.Streak = streak
	result.NewAchievements = newAchievements
	return result, nil
}
