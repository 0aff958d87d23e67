package controller

import (
	"github.com/Env1sage/LMS-MED-sub001/internal/service"
	"github.com/Env1sage/LMS-MED-sub001/internal/util"
	"github.com/gin-gonic/gin"
)

type TestAttemptController struct {
	Service *service.TestAttemptService
}

func NewTestAttemptController(svc *service.TestAttemptService) *TestAttemptController {
	return &TestAttemptController{Service: svc}
}

type SaveAnswerRequest struct {
	MCQID            string  `json:"mcqId" binding:"required"`
	SelectedAnswer   *string `json:"selectedAnswer" binding:"omitempty,max=20"`
	TimeSpentSeconds int     `json:"timeSpentSeconds" binding:"min=0"`
}

// @Summary Test details for the caller
// @Tags Tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response{data=service.TestView}
// @Failure 403 {object} util.Response
// @Router /student/tests/{id} [get]
func (c *TestAttemptController) GetTestDetails(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.GetTestDetails(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Start or resume an attempt
// @Description Returns the in-progress attempt if there is one (200), otherwise creates attempt N+1 (201).
// @Tags Tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response{data=service.AttemptView}
// @Success 201 {object} util.Response{data=service.AttemptView}
// @Failure 403 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /student/tests/{id}/attempts [post]
func (c *TestAttemptController) StartAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.StartAttempt(ctx.Request.Context(), user.UserID, ctx.Param("id"), ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if view.Resumed {
		util.Success(ctx, view)
		return
	}
	util.Created(ctx, view)
}

// @Summary The caller's attempts on a test
// @Tags Tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response
// @Router /student/tests/{id}/attempts [get]
func (c *TestAttemptController) ListAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.Service.ListAttempts(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": attempts, "total": len(attempts)})
}

// @Summary Save or clear one answer
// @Tags Attempts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attempt ID"
// @Param body body SaveAnswerRequest true "Answer"
// @Success 200 {object} util.Response{data=service.SaveAnswerAck}
// @Failure 409 {object} util.Response
// @Router /student/attempts/{id}/answers [put]
func (c *TestAttemptController) SaveAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ack, err := c.Service.SaveAnswer(ctx.Request.Context(), user.UserID, ctx.Param("id"), req.MCQID, req.SelectedAnswer, req.TimeSpentSeconds)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, ack)
}

// @Summary Submit an attempt for grading
// @Tags Attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} util.Response{data=service.ResultSummary}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /student/attempts/{id}/submit [post]
func (c *TestAttemptController) SubmitAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.Service.SubmitAttempt(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// @Summary Results of a submitted attempt
// @Tags Attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} util.Response{data=service.ResultView}
// @Failure 409 {object} util.Response
// @Router /student/attempts/{id}/results [get]
func (c *TestAttemptController) GetAttemptResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.GetAttemptResults(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Hide an attempt from the student's history
// @Description The attempt number stays taken.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/attempts/{id} [delete]
func (c *TestAttemptController) ResetAttempt(ctx *gin.Context) {
	if err := c.Service.ResetAttempt(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
