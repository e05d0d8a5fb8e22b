package util

import "errors"

// 错误分两类：NotFound（请求内终止，不重试）和 InvalidInput（改状态前拒绝）。
// 持久化错误不包装，原样抛给调用方。
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSkillNotFound   = errors.New("skill not found")
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrCardNotFound    = errors.New("review card not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidQuality  = errors.New("quality must be between 0 and 5")
	ErrNoLessonContent = errors.New("no generated lessons found, generate at least one lesson first")
)
