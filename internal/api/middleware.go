package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Constants for context keys
const (
	ContextUserIDKey  = "userID"
	ContextProfileKey = "userProfile"
)

// Profile carries the identity fields the external auth provider exposes.
// Everything here comes straight from token claims; the server holds no
// user records of its own.
type Profile struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// identityClaims is the payload shape of the provider-issued tokens.
// Subject carries the opaque user id.
type identityClaims struct {
	Email            string `json:"email,omitempty"`
	Name             string `json:"name,omitempty"`
	AvatarURL        string `json:"avatarUrl,omitempty"`
	AccountCreatedAt int64  `json:"accountCreatedAt,omitempty"` // unix seconds
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware verifying provider-issued JWTs.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &identityClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.Subject == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing subject")
			return
		}

		profile := Profile{
			UserID:    claims.Subject,
			Email:     claims.Email,
			Name:      claims.Name,
			AvatarURL: claims.AvatarURL,
		}
		if claims.AccountCreatedAt > 0 {
			profile.CreatedAt = time.Unix(claims.AccountCreatedAt, 0).UTC()
		}

		c.Set(ContextUserIDKey, claims.Subject)
		c.Set(ContextProfileKey, profile)

		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get User ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) (string, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok {
		return "", errors.New("invalid user ID type in context")
	}
	return idStr, nil
}

// Helper function to get the identity profile from context
func getProfileFromContext(c *gin.Context) (Profile, error) {
	raw, exists := c.Get(ContextProfileKey)
	if !exists {
		return Profile{}, errors.New("user profile not found in context")
	}
	profile, ok := raw.(Profile)
	if !ok {
		return Profile{}, errors.New("invalid user profile type in context")
	}
	return profile, nil
}
