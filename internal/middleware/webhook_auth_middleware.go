package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// заголовок, которым Telegram подписывает доставку веб-хука
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookAuth проверяет секретный токен веб-хука.
// Токен задается при регистрации веб-хука в Bot API; запрос без
// совпадающего токена отклоняется. Пустой ожидаемый токен
// отключает проверку (локальная разработка через polling-прокси).
func WebhookAuth(expectedToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expectedToken == "" {
			c.Next()
			return
		}

		got := c.GetHeader(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(expectedToken)) != 1 {
			log.Printf("[WebhookAuth] Отклонен запрос с неверным секретным токеном (ip: %s)", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}
