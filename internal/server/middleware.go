package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ZacxDev/video-overlay/pkg/types"
)

// requestLogger logs one line per request, skipping health checks
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		}
		for _, err := range c.Errors {
			event = event.AnErr("error", err.Err)
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", c.Writer.Size()).
			Msg("http request")
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func respond(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, types.ApiResponse{Success: true, Data: data})
}

func respondStatus(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, types.ApiResponse{Error: message, Code: code})
}

// respondError maps an error's kind to an HTTP status
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var editErr *types.EditError
	if !errors.As(err, &editErr) {
		respondStatus(c, http.StatusInternalServerError, err.Error(), "internal")
		return
	}

	status := http.StatusInternalServerError
	switch editErr.Kind {
	case types.ErrorKindInputNotFound:
		status = http.StatusNotFound
	case types.ErrorKindInvalidOperation:
		status = http.StatusBadRequest
	}
	message := editErr.Message
	if editErr.Kind == types.ErrorKindEncodingFailure && editErr.Cause != nil {
		message += ": " + editErr.Cause.Error()
	}
	respondStatus(c, status, message, string(editErr.Kind))
}

func badRequest(c *gin.Context, err error) {
	respondStatus(c, http.StatusBadRequest, err.Error(), string(types.ErrorKindInvalidOperation))
}
