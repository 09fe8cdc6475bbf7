package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_catalog/internal/service"
	"github.com/GTDGit/gtd_catalog/internal/utils"
	"github.com/GTDGit/gtd_catalog/pkg/fakestore"
)

// parseProductID reads the :id path parameter. Malformed ids report false.
func parseProductID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// statusFor maps a service error to its HTTP status and API error code.
func statusFor(err error) (int, string) {
	var fetchErr *fakestore.FetchError
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return http.StatusNotFound, utils.CodeProductNotFound
	case errors.Is(err, service.ErrNoSession):
		return http.StatusUnauthorized, utils.CodeUnauthorized
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, utils.CodeUpstreamError
	default:
		return http.StatusInternalServerError, utils.CodeInternalError
	}
}

// apiError writes err in the response envelope.
func apiError(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := "Internal server error"
	switch code {
	case utils.CodeProductNotFound:
		msg = "Product not found"
	case utils.CodeUnauthorized:
		msg = "Login required"
	case utils.CodeUpstreamError:
		msg = "Failed to reach product catalog"
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", utils.GetRequestID(c)).Str("path", c.Request.URL.Path).Msg("Request failed")
	}
	utils.Error(c, status, code, msg)
}
