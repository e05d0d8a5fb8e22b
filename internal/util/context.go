package util

import "github.com/gin-gonic/gin"

const userIDKey = "userID"

// SetUserID 由中间件写入当前请求的用户ID
func SetUserID(c *gin.Context, id uint) {
	c.Set(userIDKey, id)
}

// GetUserID 取当前请求的用户ID，没有则返回0
func GetUserID(c *gin.Context) uint {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}
