package controller

import (
	"errors"
	"strconv"

	"micro_tutor_backend/internal/service"
	"micro_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
}

func NewSkillController(skillService *service.SkillService) *SkillController {
	return &SkillController{SkillService: skillService}
}

// @Summary 预览课程大纲
// @Description 根据技能名生成课程大纲预览，不落库，确认后再创建
// @Tags 技能管理
// @Accept json
// @Produce json
// @Param request body service.SkillPreviewRequest true "技能名"
// @Success 200 {object} util.Response
// @Router /api/skills/preview [post]
func (c *SkillController) PreviewCurriculum(ctx *gin.Context) {
	var req service.SkillPreviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	preview, err := c.SkillService.PreviewCurriculum(req.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, preview)
}

// @Summary 创建技能
// @Description 按确认后的大纲创建技能和占位课程
// @Tags 技能管理
// @Accept json
// @Produce json
// @Param request body service.SkillCreateRequest true "技能信息"
// @Success 201 {object} util.Response
// @Router /api/skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	var req service.SkillCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.SkillService.CreateSkill(userID, req.Name, req.Description, req.Difficulty, req.Curriculum)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// @Summary 技能列表
// @Tags 技能管理
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	skills, err := c.SkillService.GetSkills(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// @Summary 技能详情
// @Tags 技能管理
// @Produce json
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response
// @Router /api/skills/{id} [get]
func (c *SkillController) GetSkill(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	detail, err := c.SkillService.GetSkillDetail(uint(id))
	if errors.Is(err, util.ErrSkillNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 删除技能
// @Description 删除技能及其课程、测验、复习卡，已入账的经验和成就保留
// @Tags 技能管理
// @Produce json
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response
// @Router /api/skills/{id} [delete]
func (c *SkillController) DeleteSkill(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	err = c.SkillService.DeleteSkill(uint(id))
	if errors.Is(err, util.ErrSkillNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// @Summary 获取速查表
// @Description 返回技能速查表，没有时现做一份，force=true强制重新生成
// @Tags 技能管理
// @Produce json
// @Param id path int true "技能ID"
// @Param force query bool false "强制重新生成"
// @Success 200 {object} util.Response
// @Router /api/skills/{id}/cheatsheet [get]
func (c *SkillController) GetCheatSheet(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	force := ctx.Query("force") == "true"
	sheet, err := c.SkillService.GetCheatSheet(uint(id), force)
	if errors.Is(err, util.ErrSkillNotFound) {
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
	util.Success(ctx, gin.H{"cheatsheet": sheet})
}
