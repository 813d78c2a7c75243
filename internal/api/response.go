package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mi-raf/rule-look/internal/service"
	"github.com/mi-raf/rule-look/internal/session"
	"github.com/mi-raf/rule-look/internal/validation"
	"github.com/rs/zerolog/log"
)

const msgInternal = "일시적인 오류가 발생했습니다."

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, response{Success: true, Data: data})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, response{Success: true, Data: data})
}

// fail writes err as an error envelope. Validation errors keep their code
// and field messages in data so the client can place them.
func fail(c *gin.Context, err error) {
	status, res := errorResponse(err)
	c.JSON(status, res)
}

func errorResponse(err error) (int, response) {
	if ve, isValidation := validation.AsError(err); isValidation {
		if ve.Code == validation.CodeConfirmationRequired {
			return http.StatusConflict, response{Message: ve.Message, Data: ve}
		}
		return http.StatusUnprocessableEntity, response{Message: ve.Message, Data: ve}
	}
	switch {
	case errors.Is(err, session.ErrUnknownSession):
		return http.StatusNotFound, response{Message: err.Error()}
	case errors.Is(err, service.ErrNotOnScreen):
		return http.StatusConflict, response{Message: err.Error()}
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, response{Message: errBadRequest.Error()}
	default:
		log.Error().Err(err).Msg("error in response")
		return http.StatusInternalServerError, response{Message: msgInternal}
	}
}
