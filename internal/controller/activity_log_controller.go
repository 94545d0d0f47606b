package controller

import (
	"net/http"
	"strconv"

	"SereneCMSAPI/internal/authz"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/middleware"
	"SereneCMSAPI/internal/model"
	"SereneCMSAPI/internal/service"
)

type ActivityLogController struct {
	activityService *service.ActivityService
}

func NewActivityLogController(activityService *service.ActivityService) *ActivityLogController {
	return &ActivityLogController{
		activityService: activityService,
	}
}

func (c *ActivityLogController) List(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(middleware.UserContextKey).(*model.UserDTO)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}
	if !authz.CanDelete(user.Role) {
		helper.WriteError(w, helper.NewForbiddenError("Admin access required"))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := c.activityService.List(r.Context(), limit)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}
