package api

import (
	"net/http"

	"shortlet-booking/internal/handler/httperr"
	"shortlet-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// statusFor classifies an error by the taxonomy mark it carries.
func statusFor(err error) int {
	switch {
	case errs.IsAny(err, errs.ErrIdempotencyInProgress, errs.ErrIdempotencyMismatch):
		return http.StatusConflict
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.IsAny(err, errs.ErrAvailabilityConflict, errs.ErrInvalidTransition, errs.ErrDuplicateEvent):
		return http.StatusConflict
	case errs.Is(err, errs.ErrConfiguration):
		return http.StatusServiceUnavailable
	case errs.Is(err, errs.ErrUpstreamProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError aborts with the mapped status. Client errors carry the reason
// in detail; server errors only expose msg.
func respondError(c *gin.Context, err error, msg string) {
	respondErrorWithDetail(c, err, msg, nil)
}

func respondErrorWithDetail(c *gin.Context, err error, msg string, extra gin.H) {
	status := statusFor(err)
	var detail any
	if status < http.StatusInternalServerError {
		d := gin.H{"reason": err.Error()}
		for k, v := range extra {
			d[k] = v
		}
		detail = d
	}
	httperr.AbortWithError(c, status, err, msg, detail)
}

func abortUnauthorized(c *gin.Context) {
	httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
}

func abortBadRequest(c *gin.Context, err error, msg string) {
	var detail any
	if err != nil {
		detail = gin.H{"reason": err.Error()}
	}
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, detail)
}
