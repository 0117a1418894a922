package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/borrowspace/service-sharing/internal/domain"
)

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Error maps an application error onto the HTTP taxonomy: missing resource,
// invalid request, access denied, or conflict. Anything unclassified is a
// 500 with a generic message.
func Error(c *gin.Context, err error) {
	kind, ok := domain.KindOf(err)
	if !ok {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindBadRequest:
		status = http.StatusBadRequest
	case domain.KindForbidden:
		status = http.StatusForbidden
	case domain.KindConflict:
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
