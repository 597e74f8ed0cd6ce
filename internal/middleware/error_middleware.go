package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
	"github.com/winshaurya/alumnet/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Every error leaves
// through here so the envelope and status codes stay uniform.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := ""
	var details map[string]interface{}
	if errors.As(err, &customErr) {
		message = customErr.Message
		details = customErr.Details
	}

	respond := func(status int, code dto.ErrorCode, defaultMessage string) {
		if message == "" {
			message = defaultMessage
		}
		errorDetail := dto.NewErrorDetail(code, message)
		if details != nil {
			errorDetail = errorDetail.WithDetails(details)
		}
		c.JSON(status, dto.NewErrorResponse(errorDetail))
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrUnauthenticated):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(http.StatusUnauthorized, dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrInvalidPasswordResetToken),
		errors.Is(err, apperrors.ErrPasswordResetTokenUsed):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid or expired reset token")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrProfileIncomplete):
		respond(http.StatusForbidden, dto.ErrorCodeProfileIncomplete, "Profile incomplete")

	case errors.Is(err, apperrors.ErrJobNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Job not found")
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Application not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrProfileNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Profile not found")
	case errors.Is(err, apperrors.ErrCompanyNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Company not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	case errors.Is(err, apperrors.ErrAlreadyApplied):
		respond(http.StatusConflict, dto.ErrorCodeAlreadyApplied, "Already applied to this job")
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		respond(http.StatusConflict, dto.ErrorCodeCapacityExceeded, "Job has reached its applicant capacity")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		message = ""
		respond(http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleValidationError maps a gin binding failure to a 400 response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
