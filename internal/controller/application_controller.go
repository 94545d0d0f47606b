package controller

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/middleware"
	"SereneCMSAPI/internal/model"
	"SereneCMSAPI/internal/service"
)

type ApplicationController struct {
	applicationService *service.ApplicationService
}

func NewApplicationController(applicationService *service.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

func (c *ApplicationController) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	resp, err := c.applicationService.Submit(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteCreated(w, resp)
}

func (c *ApplicationController) List(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(middleware.UserContextKey).(*model.UserDTO)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	resp, err := c.applicationService.List(r.Context(), *user, r.URL.Query().Get("kind"))
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}
