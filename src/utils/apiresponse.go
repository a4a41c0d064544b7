package utils

import "github.com/gin-gonic/gin"

// Respuestas con el sobre uniforme {success, data|error, message, details?}.

func Success(ctx *gin.Context, status int, data interface{}, message string) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	ctx.JSON(status, body)
}

func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"success": false, "error": message, "message": message})
}

func ErrorWithDetails(ctx *gin.Context, status int, message string, details interface{}) {
	ctx.JSON(status, gin.H{"success": false, "error": message, "message": message, "details": details})
}
