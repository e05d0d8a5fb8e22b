package controller

import (
	"errors"
	"strconv"

	"micro_tutor_backend/internal/service"
	"micro_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

// @Summary 复习队列
// @Description 到期的复习卡片，先到期的排前面
// @Tags 复习
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/reviews/queue [get]
func (c *ReviewController) GetQueue(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	queue, err := c.ReviewService.GetQueue(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"cards": queue, "count": len(queue)})
}

// @Summary 复习评分
// @Description 对一张卡片打0到5分，按SM-2更新下次复习时间
// @Tags 复习
// @Accept json
// @Produce json
// @Param id path int true "卡片ID"
// @Param request body service.ReviewRateRequest true "评分"
// @Success 200 {object} util.Response
// @Router /api/reviews/{id}/rate [post]
func (c *ReviewController) RateCard(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	var req service.ReviewRateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.ReviewService.RateCard(userID, uint(id), *req.Quality)
	if errors.Is(err, util.ErrInvalidQuality) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if errors.Is(err, util.ErrCardNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
