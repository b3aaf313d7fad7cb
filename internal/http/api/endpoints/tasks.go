package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/dayplan/internal/db"
	"github.com/Nixie-Tech-LLC/dayplan/internal/http/api"
	"github.com/Nixie-Tech-LLC/dayplan/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/dayplan/internal/model"
)

type TaskController struct {
	store db.Store
}

func NewTaskController(store db.Store) *TaskController {
	return &TaskController{store: store}
}

func TaskModule(store db.Store) api.Module {
	ctl := NewTaskController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/tasks", ctl.listTasks)
		c.POST("/tasks", ctl.createTask)
		c.GET("/tasks/status/:status", ctl.listTasksByStatus)
		c.GET("/tasks/:id", ctl.getTask)
		c.PUT("/tasks/:id", ctl.updateTask)
		c.DELETE("/tasks/:id", ctl.deleteTask)
	})
}

func (t *TaskController) listTasks(ctx *gin.Context) (any, *api.APIError) {
	tasks, err := t.store.ListTasks(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal("failed to list tasks", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return api.List{Key: "tasks", Items: tasks, Count: len(tasks)}, nil
}

func (t *TaskController) listTasksByStatus(ctx *gin.Context) (any, *api.APIError) {
	status := ctx.Param("status")
	if !model.ValidTaskStatus(status) {
		return nil, api.BadRequest("invalid status", nil)
	}

	tasks, err := t.store.ListTasksByStatus(ctx.Request.Context(), status)
	if err != nil {
		return nil, api.Internal("failed to list tasks", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return api.List{Key: "tasks", Items: tasks, Count: len(tasks)}, nil
}

func (t *TaskController) getTask(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := paramID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	task, err := t.store.GetTask(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.Internal("failed to get task", err)
	}
	if task == nil {
		return nil, api.NotFound("task not found")
	}
	return gin.H{"task": task}, nil
}

func (t *TaskController) createTask(ctx *gin.Context) (any, *api.APIError) {
	var request packets.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest("invalid request body", err)
	}
	in, err := request.Input()
	if err != nil {
		return nil, api.BadRequest(err.Error(), err)
	}

	task, err := t.store.CreateTask(ctx.Request.Context(), in)
	if err != nil {
		return nil, failure("could not create task", err)
	}
	return api.Created(gin.H{"task": task}), nil
}

func (t *TaskController) updateTask(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := paramID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest("invalid request body", err)
	}
	patch, err := request.Patch()
	if err != nil {
		return nil, api.BadRequest(err.Error(), err)
	}

	task, err := t.store.UpdateTask(ctx.Request.Context(), id, patch)
	if err != nil {
		return nil, failure("could not update task", err)
	}
	if task == nil {
		return nil, api.NotFound("task not found")
	}
	return gin.H{"task": task}, nil
}

func (t *TaskController) deleteTask(ctx *gin.Context) (any, *api.APIError) {
	id, apiErr := paramID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	ok, err := t.store.DeleteTask(ctx.Request.Context(), id)
	if err != nil {
		return nil, api.Internal("could not delete task", err)
	}
	if !ok {
		return nil, api.NotFound("task not found")
	}
	return api.NoContent(), nil
}
