package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secretKey string

func SetSecretKey(key string) {
	secretKey = key
}

func GetSecretKey() string {
	return secretKey
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// Gets the authorization header
		authHeader := strings.TrimSpace(ctx.GetHeader("Authorization"))
		if authHeader == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header is required"})
			ctx.Abort()
			return
		}

		// Divides the header into Bearer and Token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid authorization format"})
			ctx.Abort()
			return
		}

		// Verifies the JWT token
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})

		// Checks if the token is valid
		if err != nil || !token.Valid {
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
			ctx.Abort()
			return
		}

		// Adds expiration validation for the token
		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Token expired"})
				ctx.Abort()
				return
			}
		}

		// Sets the token claims in the context (username + roles)
		username, _ := claims["username"].(string)
		if username == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
			ctx.Abort()
			return
		}

		roles := models.Roles{}
		if raw, ok := claims["roles"].([]interface{}); ok {
			for _, r := range raw {
				if s, ok := r.(string); ok {
					roles = append(roles, s)
				}
			}
		}

		ctx.Set("userId", claims["id"])
		ctx.Set("username", username)
		ctx.Set("roles", roles)
		ctx.Next()
	}
}

// CurrentUsername retorna el username autenticado del contexto.
func CurrentUsername(ctx *gin.Context) string {
	username, _ := ctx.Get("username")
	s, _ := username.(string)
	return s
}

// CurrentRoles retorna los roles del usuario autenticado.
func CurrentRoles(ctx *gin.Context) models.Roles {
	roles, _ := ctx.Get("roles")
	r, _ := roles.(models.Roles)
	return r
}
