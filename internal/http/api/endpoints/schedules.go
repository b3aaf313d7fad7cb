package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/dayplan/internal/http/api"
	"github.com/Nixie-Tech-LLC/dayplan/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/dayplan/internal/schedule"
)

type ScheduleController struct {
	resolver *schedule.Resolver
}

func NewScheduleController(resolver *schedule.Resolver) *ScheduleController {
	return &ScheduleController{resolver: resolver}
}

func ScheduleModule(resolver *schedule.Resolver) api.Module {
	ctl := NewScheduleController(resolver)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedule", ctl.listSchedules)
		c.GET("/schedule/id/:id", ctl.getSchedule)
		c.GET("/schedule/:date", ctl.getScheduleByDate)
		c.POST("/schedule", ctl.createSchedule)
		c.PUT("/schedule/:id", ctl.updateSchedule)
		c.DELETE("/schedule/:id", ctl.deleteSchedule)

		// events
		c.POST("/schedule/:id/events", ctl.addEvent)
		c.PUT("/schedule/:id/events/:event_id", ctl.updateEvent)
		c.DELETE("/schedule/:id/events/:event_id", ctl.deleteEvent)
	})
}

func (s *ScheduleController) listSchedules(ctx *gin.Context) (any, *api.APIError) {
	list, err := s.resolver.List(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal("failed to list schedules", err)
	}
	return api.List{Key: "schedules", Items: packets.NewScheduleSummaries(list), Count: len(list)}, nil
}

func (s *ScheduleController) getSchedule(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := paramID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	sc, err := s.resolver.GetByID(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.Internal("failed to get schedule", err)
	}
	if sc == nil {
		return nil, api.NotFound("schedule not found")
	}
	return gin.H{"schedule": packets.NewScheduleResponse(sc)}, nil
}

func (s *ScheduleController) getScheduleByDate(ctx *gin.Context) (any, *api.APIError) {
	sc, err := s.resolver.GetByDate(ctx.Request.Context(), ctx.Param("date"))
	if err != nil {
		return nil, api.Internal("failed to get schedule", err)
	}
	return gin.H{"schedule": packets.NewScheduleResponse(sc)}, nil
}

func (s *ScheduleController) createSchedule(ctx *gin.Context) (any, *api.APIError) {
	var request packets.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest("invalid request body", err)
	}

	sc, created, err := s.resolver.Create(ctx.Request.Context(), request.Input())
	if err != nil {
		return nil, failure("could not create schedule", err)
	}

	response := gin.H{"schedule": packets.NewScheduleResponse(sc)}
	if !created {
		return response, nil
	}
	return api.Created(response), nil
}

func (s *ScheduleController) updateSchedule(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := paramID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest("invalid request body", err)
	}

	sc, err := s.resolver.Update(ctx.Request.Context(), id, request.Input())
	if err != nil {
		return nil, failure("could not update schedule", err)
	}
	if sc == nil {
		return nil, api.NotFound("schedule not found")
	}
	return gin.H{"schedule": packets.NewScheduleResponse(sc)}, nil
}

func (s *ScheduleController) deleteSchedule(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := paramID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	ok, err := s.resolver.Delete(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.Internal("could not delete schedule", err)
	}
	if !ok {
		return nil, api.NotFound("schedule not found")
	}
	return api.NoContent(), nil
}

func (s *ScheduleController) addEvent(ctx *gin.Context) (any, *api.APIError) {
	scheduleID, apiErr := paramID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.EventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest("invalid request body", err)
	}

	ev, err := s.resolver.AddEvent(ctx.Request.Context(), scheduleID, request.Input())
	if err != nil {
		return nil, failure("could not add event", err)
	}
	if ev == nil {
		return nil, api.NotFound("schedule not found")
	}
	return api.Created(gin.H{"event": packets.NewEventResponse(*ev)}), nil
}

func (s *ScheduleController) updateEvent(ctx *gin.Context) (any, *api.APIError) {
	scheduleID, apiErr := paramID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	eventID, apiErr := paramID(ctx, "event_id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.EventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest("invalid request body", err)
	}

	ev, err := s.resolver.UpdateEvent(ctx.Request.Context(), scheduleID, eventID, request.Patch())
	if err != nil {
		return nil, failure("could not update event", err)
	}
	if ev == nil {
		return nil, api.NotFound("event not found")
	}
	return gin.H{"event": packets.NewEventResponse(*ev)}, nil
}

func (s *ScheduleController) deleteEvent(ctx *gin.Context) (any, *api.APIError) {
	scheduleID, apiErr := paramID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	eventID, apiErr := paramID(ctx, "event_id")
	if apiErr != nil {
		return nil, apiErr
	}

	ok, err := s.resolver.DeleteEvent(ctx.Request.Context(), scheduleID, eventID)
	if err != nil {
		return nil, api.Internal("could not delete event", err)
	}
	if !ok {
		return nil, api.NotFound("event not found")
	}
	return api.NoContent(), nil
}
