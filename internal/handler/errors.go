package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/todopro_api/internal/utils"
)

// errorStatus maps service sentinels to HTTP status codes.
var errorStatus = []struct {
	err    error
	status int
}{
	{utils.ErrInvalidInput, http.StatusBadRequest},
	{utils.ErrTooManyLines, http.StatusBadRequest},
	{utils.ErrInvalidStatus, http.StatusBadRequest},
	{utils.ErrNoRecipient, http.StatusBadRequest},
	{utils.ErrInvalidCredentials, http.StatusUnauthorized},
	{utils.ErrSignupClosed, http.StatusForbidden},
	{utils.ErrProductNotFound, http.StatusNotFound},
	{utils.ErrQuoteNotFound, http.StatusNotFound},
	{utils.ErrLeadNotFound, http.StatusNotFound},
	{utils.ErrTemplateNotFound, http.StatusNotFound},
	{utils.ErrNotificationGone, http.StatusNotFound},
	{utils.ErrEmailTaken, http.StatusConflict},
	{utils.ErrAlreadyContract, http.StatusConflict},
	{utils.ErrMessagingDisabled, http.StatusServiceUnavailable},
}

// respondError writes err using the standard envelope. Unknown errors are
// logged and reported as 500 without leaking details.
func respondError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			utils.Error(c, e.status, e.err.Error(), errorMessage(err, e.err))
			return
		}
	}
	log.Error().Err(err).Str("request_id", c.GetString(utils.RequestIDKey)).Str("path", c.FullPath()).Msg("Request failed")
	utils.InternalError(c)
}

// errorMessage strips the "CODE: " prefix added when a sentinel is wrapped
// with detail.
func errorMessage(err, sentinel error) string {
	msg := err.Error()
	if detail, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return detail
	}
	return humanize(sentinel.Error())
}

// humanize turns QUOTE_NOT_FOUND into "Quote not found".
func humanize(code string) string {
	s := strings.ToLower(strings.ReplaceAll(code, "_", " "))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
