package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fcandiani/be-deel/internal/cache"
	"github.com/fcandiani/be-deel/internal/ledger"
	"github.com/fcandiani/be-deel/models"
)

// ProfileContextKey - под этим ключом разрешённый профиль лежит в
// контексте gin.
const ProfileContextKey = "profile"

// GetProfile разрешает профиль вызывающего до запуска движков.
// Принимает либо Bearer JWT (HMAC, claim profile_id), либо простой
// заголовок profile_id. Движки доверяют этой identity и не
// перепроверяют её.
func GetProfile(store *ledger.Store, profiles *cache.ProfileCache, jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, err := resolveProfileID(c, jwtKey)
		if err != nil {
			handleAuthError(c, err.Error())
			return
		}

		profile, ok := profiles.Get(c.Request.Context(), profileID)
		if !ok {
			var dbErr error
			profile, dbErr = store.GetProfile(c.Request.Context(), profileID)
			if dbErr != nil {
				handleAuthError(c, "Профиль не найден")
				return
			}
			profiles.Set(c.Request.Context(), profile)
		}

		c.Set(ProfileContextKey, profile)
		c.Next()
	}
}

// ProfileFromContext достаёт профиль, положенный GetProfile.
func ProfileFromContext(c *gin.Context) (*models.Profile, bool) {
	value, exists := c.Get(ProfileContextKey)
	if !exists {
		return nil, false
	}
	profile, ok := value.(*models.Profile)
	return profile, ok
}

func resolveProfileID(c *gin.Context, jwtKey []byte) (uint, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return 0, fmt.Errorf("неверный формат заголовка Authorization")
		}
		return profileIDFromToken(parts[1], jwtKey)
	}

	// Совместимость со старыми клиентами: profile_id в открытом виде.
	raw := c.GetHeader("profile_id")
	if raw == "" {
		return 0, fmt.Errorf("не переданы учётные данные")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректный profile_id")
	}
	return uint(id), nil
}

func profileIDFromToken(tokenStr string, jwtKey []byte) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("недействительный или просроченный токен")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("некорректные claims токена")
	}
	id, ok := claims["profile_id"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("в токене нет profile_id")
	}
	return uint(id), nil
}

func handleAuthError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
