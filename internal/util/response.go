package util

import (
	"errors"
	"net/http"

	"github.com/Env1sage/LMS-MED-sub001/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

var errorStatus = []struct {
	err    error
	status int
}{
	{ErrNotFound, http.StatusNotFound},
	{ErrNotAssigned, http.StatusForbidden},
	{ErrTestNotActive, http.StatusForbidden},
	{ErrTestNotStarted, http.StatusForbidden},
	{ErrTestEnded, http.StatusForbidden},
	{ErrAlreadyAttempted, http.StatusConflict},
	{ErrMaxAttemptsReached, http.StatusConflict},
	{ErrInvalidOrCompletedAttempt, http.StatusConflict},
	{ErrAlreadySubmitted, http.StatusConflict},
	{ErrNotYetSubmitted, http.StatusConflict},
	{ErrSessionCompleted, http.StatusConflict},
	{ErrAlreadyAnswered, http.StatusConflict},
	{ErrInvalidInput, http.StatusUnprocessableEntity},
}

// StatusFor maps an engine error onto an HTTP status; 0 means unexpected.
func StatusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return 0
}

// HandleError answers expected engine errors with their mapped status and
// everything else with a logged 500.
func HandleError(c *gin.Context, err error) {
	if status := StatusFor(err); status != 0 {
		Error(c, status, err.Error())
		return
	}
	LogInternalError(c, err)
}
