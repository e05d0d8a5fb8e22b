package controller

import (
	"strconv"

	"micro_tutor_backend/internal/service"
	"micro_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	ResourceService *service.ResourceService
}

func NewResourceController(resourceService *service.ResourceService) *ResourceController {
	return &ResourceController{ResourceService: resourceService}
}

// @Summary 检索论文
// @Description 从arXiv检索与主题相关的论文作为拓展阅读
// @Tags 学习资源
// @Produce json
// @Param topic query string true "主题"
// @Param limit query int false "数量" default(3)
// @Success 200 {object} util.Response
// @Router /api/resources/papers [get]
func (c *ResourceController) SearchPapers(ctx *gin.Context) {
	topic := ctx.Query("topic")
	if topic == "" {
		util.BadRequest(ctx, "topic is required")
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "3"))
	papers, err := c.ResourceService.SearchPapers(topic, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, papers)
}
