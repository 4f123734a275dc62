package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// respondError maps service-layer errors to HTTP responses. Unexpected
// errors are logged and surfaced as a generic server error so internal
// detail never leaks to the caller.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
	case errors.Is(err, services.ErrPaymentVerification):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrPaymentVerification, "Invalid payment signature"))
	case errors.Is(err, services.ErrCannotCancel):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrOrderNotCancellable, "Cannot cancel this order"))
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, err.Error()))
	case errors.Is(err, services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Access denied"))
	default:
		log.WithError(err).Error("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Server error"))
	}
}

// currentUser returns the authenticated caller's id and role, set by the
// JWTAuth middleware
func currentUser(ctx *gin.Context) (uint, string, bool) {
	rawID, ok := ctx.Get("userID")
	if !ok {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return 0, "", false
	}
	userID, ok := rawID.(uint)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Invalid user identity"))
		return 0, "", false
	}
	role, _ := ctx.Get("userRole")
	roleStr, _ := role.(string)
	return userID, roleStr, true
}

// pathID parses the :id path parameter
func pathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid id format"))
		return 0, false
	}
	return uint(id), true
}

// queryInt parses an integer query parameter with a default
func queryInt(ctx *gin.Context, key string, def int) int {
	raw := ctx.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
