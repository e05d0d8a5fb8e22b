package controller

import (
	"errors"
	"strconv"

	"micro_tutor_backend/internal/service"
	"micro_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// @Summary 课程详情
// @Tags 课程学习
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	payload, err := c.LessonService.GetLesson(uint(id))
	if errors.Is(err, util.ErrLessonNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, payload)
}

// @Summary 生成课程内容
// @Description 为占位课程生成正文，已生成过的直接返回
// @Tags 课程学习
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/generate [post]
func (c *LessonController) GenerateLesson(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	payload, err := c.LessonService.GenerateLesson(uint(id))
	if errors.Is(err, util.ErrLessonNotFound) || errors.Is(err, util.ErrSkillNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, payload)
}

// @Summary 完成课程
// @Description 完课入账：加经验、更新连击、生成复习卡片，重复完成不再给经验
// @Tags 课程学习
// @Accept json
// @Produce json
// @Param id path int true "课程ID"
// @Param request body service.LessonCompleteRequest false "学习时长"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/complete [post]
func (c *LessonController) CompleteLesson(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	var req service.LessonCompleteRequest
	_ = ctx.ShouldBindJSON(&req) // 请求体可省略

	result, err := c.LessonService.CompleteLesson(userID, uint(id), req.TimeSpentSeconds)
	if errors.Is(err, util.ErrLessonNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
