package handlers

import (
	"net/http"
	"strings"

	"todo_webapp/internal/db/dberr"
	"todo_webapp/internal/logger"

	"github.com/gin-gonic/gin"
)

// Error envelope types, part of the wire contract.
const (
	typeDatabaseError = "database_error"
	typeConflict      = "conflict"
	typeServerError   = "server_error"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeValidationError renders a 400 with field-level errors plus a joined
// human-readable details string.
func writeValidationError(c *gin.Context, errs []fieldError) {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+": "+e.Message)
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation error",
		"errors":  errs,
		"details": strings.Join(parts, ", "),
	})
}

// writeDBError maps a classified database error onto the HTTP surface. All
// four todo operations funnel failures through here.
func writeDBError(c *gin.Context, err error) {
	logger.Error("database operation failed", "path", c.FullPath(), "error", err)

	switch dberr.KindOf(err) {
	case dberr.KindConnection, dberr.KindAuth, dberr.KindNoDatabase, dberr.KindNoTable:
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message": err.Error(),
			"type":    typeDatabaseError,
		})
	case dberr.KindDuplicate, dberr.KindForeignKey:
		c.JSON(http.StatusConflict, gin.H{
			"message": err.Error(),
			"type":    typeConflict,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": err.Error(),
			"type":    typeServerError,
		})
	}
}
