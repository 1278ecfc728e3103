package response

import (
	"net/http"

	"cineops/internal/shared/apperror"
	"cineops/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

func Success(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, "success", code, message, data, nil)
}

// Error writes err using the status code of its kind. Storage failures are
// logged and reported without detail.
func Error(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	code := apperror.HTTPStatus(kind)

	switch kind {
	case apperror.KindStorageUnavailable, apperror.KindInternal:
		logger.GetDefault().LogHTTPError(c, err, code)
		if apperror.IsTransient(err) {
			c.Header("Retry-After", "1")
		}
		RespondJSON(c, "error", code, http.StatusText(code), nil, gin.H{"kind": kind})
		return
	case apperror.KindCapacityExceeded:
		appErr, _ := apperror.As(err)
		RespondJSON(c, "error", code, appErr.Message, nil, gin.H{
			"kind":            kind,
			"remaining_seats": appErr.Remaining,
		})
		return
	}

	appErr, _ := apperror.As(err)
	RespondJSON(c, "error", code, appErr.Message, nil, gin.H{"kind": kind})
}

// BadRequest reports a binding or parsing failure.
func BadRequest(c *gin.Context, message string, err error) {
	var details interface{}
	if err != nil {
		details = err.Error()
	}
	RespondJSON(c, "error", http.StatusBadRequest, message, nil, details)
}
