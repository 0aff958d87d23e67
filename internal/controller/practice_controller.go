package controller

import (
	"github.com/Env1sage/LMS-MED-sub001/internal/service"
	"github.com/Env1sage/LMS-MED-sub001/internal/util"
	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	Service *service.PracticeService
}

func NewPracticeController(svc *service.PracticeService) *PracticeController {
	return &PracticeController{Service: svc}
}

type PracticeAnswerRequest struct {
	MCQID            string `json:"mcqId" binding:"required"`
	SelectedAnswer   string `json:"selectedAnswer" binding:"required,max=20"`
	TimeSpentSeconds int    `json:"timeSpentSeconds" binding:"min=0"`
}

// @Summary Start a practice session
// @Tags Practice
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StartPracticeRequest false "Filters"
// @Success 201 {object} util.Response{data=service.PracticeView}
// @Router /student/practice [post]
func (c *PracticeController) StartPractice(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartPracticeRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	view, err := c.Service.StartPractice(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// @Summary The caller's practice sessions
// @Tags Practice
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /student/practice [get]
func (c *PracticeController) ListSessions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	sessions, total, err := c.Service.ListPracticeSessions(ctx.Request.Context(), user.UserID, page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: sessions, Total: total, Page: page, Limit: limit})
}

// @Summary Answer one practice question
// @Tags Practice
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param body body PracticeAnswerRequest true "Answer"
// @Success 200 {object} util.Response{data=service.PracticeFeedback}
// @Failure 409 {object} util.Response
// @Router /student/practice/{id}/answers [post]
func (c *PracticeController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PracticeAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	fb, err := c.Service.SubmitPracticeAnswer(ctx.Request.Context(), user.UserID, ctx.Param("id"), req.MCQID, req.SelectedAnswer, req.TimeSpentSeconds)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, fb)
}

// @Summary Complete a practice session
// @Tags Practice
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response{data=service.PracticeSummary}
// @Failure 409 {object} util.Response
// @Router /student/practice/{id}/complete [post]
func (c *PracticeController) CompleteSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.Service.CompletePracticeSession(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
