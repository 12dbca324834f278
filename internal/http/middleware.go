package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// Protect пропускает любой запрос: токены не проверяются.
// Удостоверение в контекст не кладётся, поэтому заказы всегда гостевые.
func Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// Admin так же ничего не проверяет
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// CurrentUserID возвращает id вошедшего пользователя или nil для гостя
func CurrentUserID(c *gin.Context) *string {
	v, ok := c.Get(userIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return nil
	}
	return &id
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
