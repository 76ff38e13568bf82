package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/pizzeria"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// statusForCode maps pizzeria error codes to HTTP statuses
var statusForCode = map[string]int{
	models.ErrValidationFailed:   http.StatusBadRequest,
	models.ErrInvalidCredentials: http.StatusBadRequest,
	models.ErrInvalidProfile:     http.StatusBadRequest,
	models.ErrInvalidEmail:       http.StatusBadRequest,
	models.ErrDuplicateAccount:   http.StatusConflict,
	models.ErrNotConnected:       http.StatusUnauthorized,
	models.ErrNotFound:           http.StatusNotFound,
	models.ErrConflict:           http.StatusConflict,
	models.ErrForbidden:          http.StatusUnprocessableEntity,
	models.ErrOrder:              http.StatusConflict,
}

// respondError writes err as an APIError. Errors that are not pizzeria
// errors are logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	kind := pizzeria.KindOf(err)
	if kind == nil {
		log.WithError(err).WithField("path", c.FullPath()).Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "internal server error"))
		return
	}
	status, ok := statusForCode[kind.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, models.NewAPIError(kind.Code, err.Error()))
}

// respondBindError reports a request body that could not be decoded or validated
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "invalid request body",
		map[string]interface{}{"reason": err.Error()}))
}
