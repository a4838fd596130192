package public

import (
	"github.com/foodiehub/internal/http/response"
	handlershared "github.com/foodiehub/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getUserID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

func getSessionID(c *gin.Context) (string, bool) {
	value, exists := c.Get("session_id")
	if !exists {
		respondError(c, response.CodeBadRequest, "error.session_missing", nil)
		return "", false
	}
	sessionID, ok := value.(string)
	if !ok || sessionID == "" {
		respondError(c, response.CodeBadRequest, "error.session_missing", nil)
		return "", false
	}
	return sessionID, true
}
