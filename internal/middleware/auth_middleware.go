package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/internal/errors"
	"github.com/ravelt/retailpos-backend/pkg/util"
	"gorm.io/gorm"
)

// Context keys for user information
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
)

type AuthMiddleware struct {
	jwtSecret string
	db        *gorm.DB
}

func NewAuthMiddleware(jwtSecret string, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		db:        db,
	}
}

// Authenticate validates JWT token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Authorization header must be in Bearer format")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session has expired, please log in again")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, model.UserRole(claims.Role))

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
			"email":   claims.Email,
			"role":    claims.Role,
		})

		c.Next()
	}
}

// RequireRole checks if user has one of the required roles
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		userRole, exists := c.Get(UserRoleKey)
		if !exists {
			log.Warn("Role information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzRoleNotFound, "Role information not found")
			c.Abort()
			return
		}

		role := userRole.(model.UserRole)
		userID, _ := GetUserID(c)

		for _, r := range roles {
			if role == model.UserRole(r) {
				log.Debug("Role check passed", map[string]interface{}{
					"user_id":       userID,
					"user_role":     role,
					"required_role": r,
				})
				c.Next()
				return
			}
		}

		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        userID,
			"user_role":      role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		errors.Forbidden(c, "You do not have access to this resource")
		c.Abort()
	}
}

// ownershipCheck reports whether userID owns the resource with the given ID.
type ownershipCheck func(db *gorm.DB, resourceID, userID uint) (bool, error)

// ownershipChecks maps a resource name to its explicit owner lookup. Every
// ownership-guarded route names its resource here; there is no generic
// fallback.
var ownershipChecks = map[string]ownershipCheck{
	"branch": func(db *gorm.DB, resourceID, userID uint) (bool, error) {
		var count int64
		err := db.Model(&model.Branch{}).
			Where("id = ? AND owner_id = ?", resourceID, userID).
			Count(&count).Error
		return count > 0, err
	},
	"store": func(db *gorm.DB, resourceID, userID uint) (bool, error) {
		var count int64
		err := db.Model(&model.Store{}).
			Where("id = ? AND owner_id = ?", resourceID, userID).
			Count(&count).Error
		return count > 0, err
	},
}

// RequireOwnership ensures the authenticated user owns the resource named in
// the route parameter. The resource must be registered in ownershipChecks.
func (m *AuthMiddleware) RequireOwnership(resource, param string) gin.HandlerFunc {
	check, ok := ownershipChecks[resource]
	if !ok {
		panic("no ownership check registered for resource " + resource)
	}

	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		userID, exists := GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		resourceID, err := strconv.ParseUint(c.Param(param), 10, 32)
		if err != nil {
			log.Warn("Invalid resource ID in ownership check", map[string]interface{}{
				"resource": resource,
				"param":    c.Param(param),
			})
			errors.BadRequest(c, errors.ValidationInvalidID, "Invalid "+resource+" ID")
			c.Abort()
			return
		}

		owned, err := check(m.db, uint(resourceID), userID)
		if err != nil {
			log.Error("Ownership lookup failed", err, map[string]interface{}{
				"resource":    resource,
				"resource_id": resourceID,
				"user_id":     userID,
			})
			errors.InternalError(c, "")
			c.Abort()
			return
		}
		if !owned {
			log.Warn("Ownership check failed", map[string]interface{}{
				"resource":    resource,
				"resource_id": resourceID,
				"user_id":     userID,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzOwnerOnly, "Only the owner may perform this action")
			c.Abort()
			return
		}

		log.Debug("Ownership check passed", map[string]interface{}{
			"resource":    resource,
			"resource_id": resourceID,
			"user_id":     userID,
		})
		c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUserEmail extracts user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetUserRole extracts user role from context
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(model.UserRole), true
}
