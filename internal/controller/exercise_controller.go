package controller

import (
	"micro_tutor_backend/internal/service"
	"micro_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
}

func NewExerciseController(exerciseService *service.ExerciseService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService}
}

// @Summary 批改编码练习
// @Description AI批改课内练习，做对给经验
// @Tags 练习
// @Accept json
// @Produce json
// @Param request body service.ExerciseEvaluateRequest true "题目、代码和运行输出"
// @Success 200 {object} util.Response
// @Router /api/exercises/evaluate [post]
func (c *ExerciseController) Evaluate(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	var req service.ExerciseEvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.ExerciseService.Evaluate(userID, req.Exercise, req.Submission, req.Output)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
