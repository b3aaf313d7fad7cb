package endpoints

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/dayplan/internal/db"
	"github.com/Nixie-Tech-LLC/dayplan/internal/http/api"
	"github.com/Nixie-Tech-LLC/dayplan/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
	"github.com/Nixie-Tech-LLC/dayplan/internal/schedule"
)

type PomodoroController struct {
	store db.Store
}

func NewPomodoroController(store db.Store) *PomodoroController {
	return &PomodoroController{store: store}
}

func PomodoroModule(store db.Store) api.Module {
	ctl := NewPomodoroController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/pomodoro/settings", ctl.getSettings)
		c.PUT("/pomodoro/settings", ctl.updateSettings)

		c.GET("/pomodoro/sessions", ctl.listSessions)
		c.POST("/pomodoro/sessions", ctl.createSession)
		c.GET("/pomodoro/sessions/date/:date", ctl.listSessionsByDate)
		c.PUT("/pomodoro/sessions/:id/complete", ctl.completeSession)
		c.DELETE("/pomodoro/sessions/:id", ctl.deleteSession)
	})
}

func (p *PomodoroController) getSettings(ctx *gin.Context) (any, *api.APIError) {
	settings, err := p.store.GetPomodoroSettings(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal("failed to get pomodoro settings", err)
	}
	if settings == nil {
		return nil, api.NotFound("pomodoro settings not found")
	}
	return gin.H{"settings": settings}, nil
}

func (p *PomodoroController) updateSettings(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest("invalid request body", err)
	}

	settings, err := p.store.UpdatePomodoroSettings(ctx.Request.Context(), request.Patch())
	if err != nil {
		return nil, failure("could not update pomodoro settings", err)
	}
	return gin.H{"settings": settings}, nil
}

func (p *PomodoroController) listSessions(ctx *gin.Context) (any, *api.APIError) {
	sessions, err := p.store.ListSessions(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal("failed to list pomodoro sessions", err)
	}
	if sessions == nil {
		sessions = []model.PomodoroSession{}
	}
	return api.List{Key: "sessions", Items: sessions, Count: len(sessions)}, nil
}

func (p *PomodoroController) listSessionsByDate(ctx *gin.Context) (any, *api.APIError) {
	date := ctx.Param("date")
	if !schedule.IsISODate(date) {
		return nil, api.BadRequest("date must be YYYY-MM-DD", nil)
	}

	sessions, err := p.store.ListSessionsByDate(ctx.Request.Context(), date)
	if err != nil {
		return nil, api.Internal("failed to list pomodoro sessions", err)
	}
	if sessions == nil {
		sessions = []model.PomodoroSession{}
	}
	return api.List{Key: "sessions", Items: sessions, Count: len(sessions)}, nil
}

func (p *PomodoroController) createSession(ctx *gin.Context) (any, *api.APIError) {
	var request packets.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest("invalid request body", err)
	}
	in, err := request.Input()
	if err != nil {
		return nil, api.BadRequest(err.Error(), err)
	}

	if in.TaskID != nil {
		task, err := p.store.GetTask(ctx.Request.Context(), *in.TaskID)
		if err != nil {
			return nil, api.Internal("could not create pomodoro session", err)
		}
		if task == nil {
			return nil, api.BadRequest("task not found", nil)
		}
	}

	session, err := p.store.CreateSession(ctx.Request.Context(), in)
	if err != nil {
		return nil, failure("could not create pomodoro session", err)
	}
	return api.Created(gin.H{"session": session}), nil
}

func (p *PomodoroController) completeSession(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := paramID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.CompleteSessionRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return nil, api.BadRequest("invalid request body", err)
		}
	}
	if request.Duration != nil && *request.Duration <= 0 {
		return nil, api.BadRequest("duration must be positive", nil)
	}

	endTime := time.Now().UTC().Format(time.RFC3339)
	session, err := p.store.CompleteSession(ctx.Request.Context(), id, endTime, request.Duration)
	if err != nil {
		return nil, api.Internal("could not complete pomodoro session", err)
	}
	if session == nil {
		return nil, api.NotFound("session not found")
	}
	return gin.H{"session": session}, nil
}

func (p *PomodoroController) deleteSession(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := paramID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	ok, err := p.store.DeleteSession(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.Internal("could not delete pomodoro session", err)
	}
	if !ok {
		return nil, api.NotFound("session not found")
	}
	return api.NoContent(), nil
}
