package controller

import (
	"strconv"

	"micro_tutor_backend/internal/service"
	"micro_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// @Summary 导师问答
// @Description 向AI导师提问，带skill_id时结合技能背景回答并保存历史
// @Tags 导师对话
// @Accept json
// @Produce json
// @Param request body service.ChatRequest true "问题"
// @Success 200 {object} util.Response
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	var req service.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.ChatService.Chat(userID, req.SkillID, req.LessonID, req.Message)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 对话历史
// @Tags 导师对话
// @Produce json
// @Param skillId path int true "技能ID"
// @Success 200 {object} util.Response
// @Router /api/chat/history/{skillId} [get]
func (c *ChatController) GetHistory(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	skillID, err := strconv.Atoi(ctx.Param("skillId"))
	if err != nil {
		util.BadRequest(ctx, "invalid skill id")
		return
	}
	messages, err := c.ChatService.GetHistory(userID, uint(skillID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}
