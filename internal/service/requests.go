package service

// HTTP层绑定用的请求结构

type SkillPreviewRequest struct {
	Name string `json:"name" binding:"required"`
}

type SkillCreateRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Difficulty  int               `json:"difficulty"`
	Curriculum  []CurriculumTopic `json:"curriculum" binding:"required,min=1,dive"`
}

type LessonCompleteRequest struct {
	TimeSpentSeconds int `json:"time_spent_seconds"`
}

type QuizGradeRequest struct {
	Question QuizQuestion `json:"question" binding:"required"`
	Answer   string       `json:"answer" binding:"required"`
}

type QuizSubmitRequest struct {
	Answers map[string]AnswerRecord `json:"answers" binding:"required"`
}

type ReviewRateRequest struct {
	// quality为0是合法评分，指针区分“没传”和“传了0”
	Quality *int `json:"quality" binding:"required"`
}

type ChatRequest struct {
	Message  string `json:"message" binding:"required"`
	SkillID  *uint  `json:"skill_id"`
	LessonID *uint  `json:"lesson_id"`
}

type ProjectSubmitRequest struct {
	Submission string `json:"submission" binding:"required"`
}

type ExerciseEvaluateRequest struct {
	Exercise   string `json:"exercise" binding:"required"`
	Submission string `json:"submission" binding:"required"`
	Output     string `json:"output"`
}
