package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// SetJWTSecret configures the secret used to validate bearer tokens.
// Must be called once during startup, before the router is mounted.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// JWTAuth validates the Authorization bearer token and stores the caller's
// identity (userID, userRole) in the gin context. Token issuance is handled
// by an external service; this API only verifies HMAC-signed tokens.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithAuthError(c, http.StatusUnauthorized, "Missing Authorization header. A valid Bearer token is required.")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithAuthError(c, http.StatusUnauthorized, "Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortWithAuthError(c, http.StatusUnauthorized, "Bearer token is empty")
			return
		}

		claims, err := parseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			abortWithAuthError(c, http.StatusUnauthorized, err.Error())
			return
		}

		if err := extractAndSetClaims(c, claims); err != nil {
			abortWithAuthError(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Next()
	}
}

func abortWithAuthError(c *gin.Context, status int, description string) {
	c.JSON(status, gin.H{"error": description})
	c.Abort()
}

// parseAndValidateJWT parses the JWT and performs strict validation
func parseAndValidateJWT(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method to prevent algorithm confusion attacks
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}

	now := time.Now()

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil && exp.Before(now) {
		return nil, fmt.Errorf("token has expired")
	}

	nbf, err := claims.GetNotBefore()
	if err != nil {
		return nil, fmt.Errorf("invalid nbf claim: %w", err)
	}
	if nbf != nil && nbf.After(now) {
		return nil, fmt.Errorf("token not yet valid")
	}

	return claims, nil
}

// extractAndSetClaims extracts user information from JWT claims and sets it in the Gin context
func extractAndSetClaims(c *gin.Context, claims jwt.MapClaims) error {
	userID, err := extractUserID(claims)
	if err != nil {
		return err
	}
	if userID == 0 {
		return fmt.Errorf("invalid user identifier: cannot be zero")
	}
	c.Set("userID", userID)

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return fmt.Errorf("token missing required 'role' claim. Tokens must explicitly specify user roles")
	}
	if role != "admin" && role != "user" {
		return fmt.Errorf("invalid role claim: %s", role)
	}
	c.Set("userRole", role)

	return nil
}

// extractUserID extracts and validates the user ID from the "uid" claim
func extractUserID(claims jwt.MapClaims) (uint, error) {
	// JSON numbers are parsed as float64
	if uid, ok := claims["uid"].(float64); ok {
		if uid <= 0 {
			return 0, fmt.Errorf("invalid uid claim: must be positive, got: %f", uid)
		}
		return uint(uid), nil
	}
	return 0, fmt.Errorf("token missing required 'uid' claim. This token is not valid for this API")
}
