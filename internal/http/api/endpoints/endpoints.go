package endpoints

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/dayplan/internal/db"
	"github.com/Nixie-Tech-LLC/dayplan/internal/http/api"
	"github.com/Nixie-Tech-LLC/dayplan/internal/schedule"
)

func paramID(ctx *gin.Context, name string) (int, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, api.BadRequest("invalid "+name, err)
	}
	return id, nil
}

// failure maps validation errors to 400 and everything else to 500.
func failure(message string, err error) *api.APIError {
	if errors.Is(err, schedule.ErrValidation) || errors.Is(err, db.ErrValidation) {
		return api.BadRequest(err.Error(), err)
	}
	return api.Internal(message, err)
}
