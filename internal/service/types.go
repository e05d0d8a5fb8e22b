package service

// AI生成内容的结构化类型。JSON键与提示词里约定的键一致，
// 模型返回什么键这里就叫什么键。

type CurriculumTopic struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type CurriculumPreview struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Curriculum  []CurriculumTopic `json:"curriculum"`
}

type LessonSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

type CodingExercise struct {
	Prompt      string `json:"prompt"`
	StarterCode string `json:"starter_code"`
	Language    string `json:"language"`
}

type LessonContent struct {
	Introduction string          `json:"introduction"`
	Sections     []LessonSection `json:"sections"`
	KeyPoints    []string        `json:"key_points"`
	Summary      string          `json:"summary"`
	Exercise     *CodingExercise `json:"exercise,omitempty"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"` // multiple_choice 或 open_ended
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type GradeResult struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

type ReviewCardDraft struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ProjectBrief struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Requirements       []string `json:"requirements"`
	EvaluationCriteria string   `json:"evaluation_criteria"`
	SubmissionType     string   `json:"submission_type"` // code 或 text
}

type ProjectEvaluation struct {
	Passed              bool     `json:"passed"`
	Score               int      `json:"score"`
	Feedback            string   `json:"feedback"`
	Strengths           []string `json:"strengths"`
	Suggestions         []string `json:"suggestions"`
	AreasForImprovement []string `json:"areas_for_improvement"`
}

type ExerciseEvaluation struct {
	Correct  bool     `json:"correct"`
	Feedback string   `json:"feedback"`
	Hints    []string `json:"hints"`
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContentGenerator 内容生成器能力。核心逻辑只依赖这个接口，
// 生产实现是TutorService，测试用桩实现。
type ContentGenerator interface {
	GenerateCurriculum(skillName string) (*CurriculumPreview, error)
	GenerateLesson(skillName, topic string, difficulty int, previousTopics []string) (*LessonContent, error)
	GenerateQuiz(content *LessonContent, difficulty int) ([]QuizQuestion, error)
	GradeAnswer(question QuizQuestion, answer string) (*GradeResult, error)
	GenerateReviewCards(content *LessonContent) ([]ReviewCardDraft, error)
	GenerateCheatSheet(skillName, lessonSummaries string) (string, error)
	GenerateProjectBrief(skillName, curriculumOverview, lessonTopics, submissionType string) (*ProjectBrief, error)
	EvaluateProject(skillName string, brief *ProjectBrief, submission string) (*ProjectEvaluation, error)
	EvaluateExercise(exercise, submission, output string) (*ExerciseEvaluation, error)
	Chat(messages []AIChatMessage, skillContext string) (string, error)
}
