package middleware

import (
	"strconv"

	"micro_tutor_backend/internal/repository"
	"micro_tutor_backend/internal/util"
	"micro_tutor_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserContext 解析当前用户并放进请求上下文。
// 单用户部署默认落到种子用户，多份数据并存时客户端用X-User-ID切换
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := database.DefaultUserID
		if header := c.GetHeader("X-User-ID"); header != "" {
			if parsed, err := strconv.ParseUint(header, 10, 32); err == nil && parsed > 0 {
				userID = uint(parsed)
			}
		}
		util.SetUserID(c, userID)
		c.Next()
	}
}

// RequestID 为每个请求生成追踪ID，响应头原样带回
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Activity 异步刷新用户最近活跃时间，不阻塞请求
func Activity(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		userID := util.GetUserID(c)
		if userID == 0 {
			return
		}
		go func() {
			_ = userRepo.UpdateLastSeen(userID)
		}()
	}
}
