package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/perma-museum/custodian/internal/domain"
	"github.com/perma-museum/custodian/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeUnauthorized     ErrorCode = "unauthorized"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeConflict         ErrorCode = "conflict"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// conflictErrors are domain state conflicts that all map to 409
var conflictErrors = []error{
	domain.ErrAlreadyInitialized,
	domain.ErrAlreadyExists,
	domain.ErrAlreadyListed,
	domain.ErrAlreadyInAuction,
	domain.ErrNotActive,
	domain.ErrTooEarly,
	domain.ErrAuctionEnded,
	domain.ErrBidTooLow,
	domain.ErrSelfPurchase,
	domain.ErrHasBids,
	domain.ErrNotInitialized,
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}
	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondDomainError maps a domain error onto its HTTP representation:
// Unauthorized 401, NotFound 404, InvalidParameter 422 and every state
// conflict 409. Anything unrecognized is a 500 and gets logged.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(c, http.StatusUnauthorized, errCodeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(c, http.StatusNotFound, errCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidParameter):
		respondWithError(c, http.StatusUnprocessableEntity, errCodeValidationFailed, err.Error())
	case isConflict(err):
		respondWithError(c, http.StatusConflict, errCodeConflict, err.Error())
	default:
		logger.Error(err, zap.String("path", c.Request.URL.Path))
		respondWithError(c, http.StatusInternalServerError, errCodeInternalError, "Internal server error")
	}
}

func isConflict(err error) bool {
	for _, conflict := range conflictErrors {
		if errors.Is(err, conflict) {
			return true
		}
	}
	return false
}
