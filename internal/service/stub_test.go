package service

import "errors"

// stubGenerator 测试用的内容生成器，返回固定内容，不发任何网络请求
type stubGenerator struct {
	failAll         bool
	curriculumCalls int
}

var errStubFailure = errors.New("generator unavailable")

func (s *stubGenerator) GenerateCurriculum(skillName string) (*CurriculumPreview, error) {
	s.curriculumCalls++
	if s.failAll {
		return nil, errStubFailure
	}
	return &CurriculumPreview{
		Name:        skillName,
		Description: "测试大纲",
		Curriculum: []CurriculumTopic{
			{Title: "入门", Description: "基础概念"},
			{Title: "进阶", Description: "深入一点"},
		},
	}, nil
}

func (s *stubGenerator) GenerateLesson(skillName, topic string, difficulty int, previousTopics []string) (*LessonContent, error) {
	if s.failAll {
		return nil, errStubFailure
	}
	return &LessonContent{
		Introduction: "这节课讲" + topic,
		Sections:     []LessonSection{{Heading: "第一节", Body: "正文"}},
		KeyPoints:    []string{"要点一", "要点二"},
		Summary:      topic + "小结",
	}, nil
}

func (s *stubGenerator) GenerateQuiz(content *LessonContent, difficulty int) ([]QuizQuestion, error) {
	if s.failAll {
		return nil, errStubFailure
	}
	return []QuizQuestion{
		{Question: "问题一", Type: "multiple_choice", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		{Question: "问题二", Type: "open_ended", CorrectAnswer: "参考答案"},
	}, nil
}

func (s *stubGenerator) GradeAnswer(question QuizQuestion, answer string) (*GradeResult, error) {
	if s.failAll {
		return nil, errStubFailure
	}
	return &GradeResult{Correct: answer == question.CorrectAnswer, Feedback: "已批改"}, nil
}

func (s *stubGenerator) GenerateReviewCards(content *LessonContent) ([]ReviewCardDraft, error) {
	if s.failAll {
		return nil, errStubFailure
	}
	return []ReviewCardDraft{
		{Question: "要点一是什么", Answer: "要点一"},
		{Question: "要点二是什么", Answer: "要点二"},
	}, nil
}

func (s *stubGenerator) GenerateCheatSheet(skillName, lessonSummaries string) (string, error) {
	if s.failAll {
		return "", errStubFailure
	}
	return "# " + skillName + " 速查表", nil
}

func (s *stubGenerator) GenerateProjectBrief(skillName, curriculumOverview, lessonTopics, submissionType string) (*ProjectBrief, error) {
	if s.failAll {
		return nil, errStubFailure
	}
	return &ProjectBrief{
		Title:          skillName + "实践项目",
		Description:    "做一个小东西",
		Requirements:   []string{"要求一"},
		SubmissionType: submissionType,
	}, nil
}

func (s *stubGenerator) EvaluateProject(skillName string, brief *ProjectBrief, submission string) (*ProjectEvaluation, error) {
	if s.failAll {
		return nil, errStubFailure
	}
	passed := submission != "bad"
	return &ProjectEvaluation{Passed: passed, Score: 90, Feedback: "已评审"}, nil
}

func (s *stubGenerator) EvaluateExercise(exercise, submission, output string) (*ExerciseEvaluation, error) {
	if s.failAll {
		return nil, errStubFailure
	}
	return &ExerciseEvaluation{Correct: submission != "bad", Feedback: "已批改"}, nil
}

func (s *stubGenerator) Chat(messages []AIChatMessage, skillContext string) (string, error) {
	if s.failAll {
		return "", errStubFailure
	}
	return "回答", nil
}
