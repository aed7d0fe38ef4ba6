package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"safari-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondOK writes the success envelope. Empty message and nil data are omitted.
func respondOK(c *gin.Context, status int, message string, data any) {
	payload := gin.H{"success": true}
	if message != "" {
		payload["message"] = message
	}
	if data != nil {
		payload["data"] = data
	}
	c.JSON(status, payload)
}

// bindOptionalJSON parses the body when there is one.
func bindOptionalJSON[T any](c *gin.Context, dst *T) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil && err != io.EOF {
		return domain.ValidationError{Msg: "invalid payload", Err: err}
	}
	return nil
}

// bindJSON requires a parsable body.
func bindJSON[T any](c *gin.Context, dst *T) error {
	if c.Request.Body == nil {
		return domain.ValidationError{Msg: "empty body"}
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		return domain.ValidationError{Msg: "invalid payload", Err: err}
	}
	return nil
}

func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError{Field: name, Msg: "invalid id", Err: err}
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationError{Field: name, Msg: "must be a number", Err: err}
	}
	return n, nil
}

func pdfInline(c *gin.Context, filename string, body []byte) {
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
