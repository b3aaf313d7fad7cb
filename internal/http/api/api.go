package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// APIError is returned by handlers; Err is the underlying cause and is
// reported in the "error" field when set.
type APIError struct {
	Code    int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func BadRequest(message string, err error) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: message, Err: err}
}

func NotFound(message string) *APIError {
	return &APIError{Code: http.StatusNotFound, Message: message}
}

func Internal(message string, err error) *APIError {
	return &APIError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// Reply lets a handler choose the status code of a successful response.
type Reply struct {
	Code int
	Data any
}

func Created(data any) Reply { return Reply{Code: http.StatusCreated, Data: data} }

func NoContent() Reply { return Reply{Code: http.StatusNoContent} }

// List marks data as a collection so the envelope carries a results count.
type List struct {
	Key   string
	Items any
	Count int
}

type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// ResolveEndpoint wraps a handler into the success/error JSON envelope.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			writeError(ctx, apiErr)
			return
		}

		code := http.StatusOK
		if r, ok := result.(Reply); ok {
			code, result = r.Code, r.Data
		}
		if code == http.StatusNoContent {
			ctx.Status(code)
			return
		}

		body := gin.H{"status": "success"}
		if l, ok := result.(List); ok {
			body["results"] = l.Count
			body["data"] = gin.H{l.Key: l.Items}
		} else {
			body["data"] = result
		}
		ctx.JSON(code, body)
	}
}

func writeError(ctx *gin.Context, e *APIError) {
	body := gin.H{"status": "error", "message": e.Message}
	if e.Err != nil {
		body["error"] = e.Err.Error()
	}
	if e.Code >= http.StatusInternalServerError {
		log.Error().Err(e.Err).Str("path", ctx.FullPath()).Msg(e.Message)
	}
	ctx.AbortWithStatusJSON(e.Code, body)
}
