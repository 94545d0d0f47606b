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

type EnrollmentController struct {
	enrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

func (c *EnrollmentController) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	resp, err := c.enrollmentService.Submit(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteCreated(w, resp)
}

func (c *EnrollmentController) List(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(middleware.UserContextKey).(*model.UserDTO)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	resp, err := c.enrollmentService.List(r.Context(), *user)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

func (c *EnrollmentController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(middleware.UserContextKey).(*model.UserDTO)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=teacher-enrollments.csv")

	if err := c.enrollmentService.ExportCSV(r.Context(), *user, w); err != nil {
		helper.WriteError(w, err)
		return
	}
}
