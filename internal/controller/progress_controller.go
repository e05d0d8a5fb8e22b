package controller

import (
	"micro_tutor_backend/internal/service"
	"micro_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Gamification  *service.GamificationService
	ReviewService *service.ReviewService
}

func NewProgressController(gamification *service.GamificationService, reviewService *service.ReviewService) *ProgressController {
	return &ProgressController{Gamification: gamification, ReviewService: reviewService}
}

// @Summary 学习进度总览
// @Description 经验、等级、连击、完成计数和到期复习数
// @Tags 进度
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	progress, err := c.Gamification.GetProgress(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	dueCount, err := c.ReviewService.CountDue(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// 等级进度条：当前等级起点到下一级所需经验
	currentLevelXP := service.XPForLevel(progress.Level)
	nextLevelXP := service.XPForLevel(progress.Level + 1)

	util.Success(ctx, gin.H{
		"progress":        progress,
		"due_reviews":     dueCount,
		"level_xp":        currentLevelXP,
		"next_level_xp":   nextLevelXP,
		"xp_into_level":   progress.TotalXP - currentLevelXP,
		"xp_to_next_level": nextLevelXP - progress.TotalXP,
	})
}

// @Summary 成就列表
// @Description 完整成就目录及解锁状态
// @Tags 进度
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/progress/achievements [get]
func (c *ProgressController) GetAchievements(ctx *gin.Context) {
	userID := util.GetUserID(ctx)
	achievements, err := c.Gamification.GetAchievements(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}
