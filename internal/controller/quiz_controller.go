package controller

import (
	"errors"
	"strconv"

	"micro_tutor_backend/internal/service"
	"micro_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// @Summary 生成测验
// @Description 针对一节课出一套新题
// @Tags 测验
// @Produce json
// @Param id path int true "课程ID"
// @Success 201 {object} util.Response
// @Router /api/lessons/{id}/quiz/generate [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	lessonID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}
	payload, err := c.QuizService.GenerateQuiz(uint(lessonID))
	if errors.Is(err, util.ErrLessonNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if errors.Is(err, util.ErrNoLessonContent) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, payload)
}

// @Summary 获取测验
// @Description 取该课最新一套测验
// @Tags 测验
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/quiz [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	lessonID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}
	payload, err := c.QuizService.GetQuiz(uint(lessonID))
	if errors.Is(err, util.ErrQuizNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, payload)
}

// @Summary 简答题判卷
// @Tags 测验
// @Accept json
// @Produce json
// @Param request body service.QuizGradeRequest true "题目和回答"
// @Success 200 {object} util.Response
// @Router /api/quiz/grade [post]
func (c *QuizController) GradeAnswer(ctx *gin.Context) {
	var req service.QuizGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.QuizService.GradeAnswer(req.Question, req.Answer)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 提交测验
// @Description 汇总成绩并入账：每对一题20经验，全对再加50
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path int true "测验ID"
// @Param request body service.QuizSubmitRequest true "各题作答结果"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	var req service.QuizSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.QuizService.SubmitQuiz(userID, uint(id), req.Answers)
	if errors.Is(err, util.ErrQuizNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
