package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/models"
)

// CachedUser is the slice of user data kept in Redis between requests.
type CachedUser struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// AuthMiddleware authenticates requests via a JWT taken from the auth_token
// cookie or the Authorization bearer header. User data is served from the
// Redis cache when available, falling back to the database.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abortUnauthorized(c, "Authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				abortUnauthorized(c, "Invalid Authorization header format")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			abortUnauthorized(c, "Invalid user ID in token")
			return
		}
		userID := uint(userIDFloat)

		cacheKey := fmt.Sprintf("user:%d:data", userID)
		if config.RDB != nil {
			cached, err := config.RDB.Get(config.Ctx, cacheKey).Result()
			if err == nil {
				var user CachedUser
				if json.Unmarshal([]byte(cached), &user) == nil {
					setContextAndProceed(c, &user)
					return
				}
			} else if err != redis.Nil {
				slog.Error("Redis GET failed", "error", err, "user_id", userID)
			}
		}

		var dbUser models.User
		if err := config.DB.First(&dbUser, userID).Error; err != nil {
			abortUnauthorized(c, "User from token not found")
			return
		}
		if !dbUser.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is disabled"})
			return
		}

		user := CachedUser{UserID: dbUser.ID, Email: dbUser.Email, FullName: dbUser.FullName}
		if config.RDB != nil {
			if data, err := json.Marshal(user); err == nil {
				if err := config.RDB.Set(config.Ctx, cacheKey, data, 15*time.Minute).Err(); err != nil {
					slog.Warn("Failed to cache user data", "error", err, "user_id", userID)
				}
			}
		}

		setContextAndProceed(c, &user)
	}
}

func setContextAndProceed(c *gin.Context, user *CachedUser) {
	c.Set("user_id", user.UserID)
	c.Set("user_email", user.Email)
	c.Next()
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
