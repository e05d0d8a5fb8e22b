package controller

import (
	"errors"
	"strconv"

	"micro_tutor_backend/internal/service"
	"micro_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	ProjectService *service.ProjectService
}

func NewProjectController(projectService *service.ProjectService) *ProjectController {
	return &ProjectController{ProjectService: projectService}
}

// @Summary 获取结业项目
// @Description 取技能的结业项目说明，没有就现生成一个
// @Tags 结业项目
// @Produce json
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response
// @Router /api/skills/{id}/project [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	skillID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid skill id")
		return
	}
	payload, err := c.ProjectService.GetOrGenerateProject(uint(skillID))
	if errors.Is(err, util.ErrSkillNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, payload)
}

// @Summary 提交项目
// @Description AI评审提交内容，首次通过奖励经验
// @Tags 结业项目
// @Accept json
// @Produce json
// @Param id path int true "项目ID"
// @Param request body service.ProjectSubmitRequest true "提交内容"
// @Success 200 {object} util.Response
// @Router /api/projects/{id}/submit [post]
func (c *ProjectController) SubmitProject(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	var req service.ProjectSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.ProjectService.SubmitProject(userID, uint(id), req.Submission)
	if errors.Is(err, util.ErrProjectNotFound) || errors.Is(err, util.ErrSkillNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 提交历史
// @Tags 结业项目
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} util.Response
// @Router /api/projects/{id}/submissions [get]
func (c *ProjectController) GetSubmissions(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	items, err := c.ProjectService.GetSubmissionHistory(userID, uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}
