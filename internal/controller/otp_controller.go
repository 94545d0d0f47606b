package controller

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"
	"SereneCMSAPI/internal/service"
)

type OTPController struct {
	otpService *service.OTPService
}

func NewOTPController(otpService *service.OTPService) *OTPController {
	return &OTPController{
		otpService: otpService,
	}
}

func (c *OTPController) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req model.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	if err := c.otpService.Send(r.Context(), req); err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, nil)
}
