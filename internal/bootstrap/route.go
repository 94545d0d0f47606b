package bootstrap

import (
	"net/http"
	"time"

	"SereneCMSAPI/internal/controller"
	"SereneCMSAPI/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type Route struct {
	chi                    *chi.Mux
	authMiddleware         *middleware.AuthMiddleware
	rateLimitMiddleware    *middleware.RateLimitMiddleware
	otpController          *controller.OTPController
	authController         *controller.AuthController
	userController         *controller.UserController
	contentController      *controller.ContentController
	eventController        *controller.EventController
	registrationController *controller.RegistrationController
	applicationController  *controller.ApplicationController
	enrollmentController   *controller.EnrollmentController
	mediaController        *controller.MediaController
	activityLogController  *controller.ActivityLogController
}

func NewRoute(
	mux *chi.Mux,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	otpController *controller.OTPController,
	authController *controller.AuthController,
	userController *controller.UserController,
	contentController *controller.ContentController,
	eventController *controller.EventController,
	registrationController *controller.RegistrationController,
	applicationController *controller.ApplicationController,
	enrollmentController *controller.EnrollmentController,
	mediaController *controller.MediaController,
	activityLogController *controller.ActivityLogController,
) *Route {
	return &Route{
		chi:                    mux,
		authMiddleware:         authMiddleware,
		rateLimitMiddleware:    rateLimitMiddleware,
		otpController:          otpController,
		authController:         authController,
		userController:         userController,
		contentController:      contentController,
		eventController:        eventController,
		registrationController: registrationController,
		applicationController:  applicationController,
		enrollmentController:   enrollmentController,
		mediaController:        mediaController,
		activityLogController:  activityLogController,
	}
}

func (route *Route) Register() {
	route.chi.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to SereneCMSAPI"))
	})

	route.chi.Route("/api", func(r chi.Router) {
		// Public surface. OTP issuance and the OTP-gated submission
		// endpoints carry their own rate limits.
		r.With(route.rateLimitMiddleware.Limit("otp_send", 10, time.Minute)).
			Post("/otp/send", route.otpController.SendOTP)

		r.With(route.rateLimitMiddleware.Limit("auth", 20, time.Minute)).
			Post("/auth/signup", route.authController.Signup)
		r.With(route.rateLimitMiddleware.Limit("auth", 20, time.Minute)).
			Post("/auth/login", route.authController.Login)

		r.Get("/contents", route.contentController.ListPublished)
		r.Get("/contents/{slug}", route.contentController.GetBySlug)

		r.Get("/events", route.eventController.ListPublic)
		r.With(route.rateLimitMiddleware.Limit("submission", 10, time.Minute)).
			Post("/events/{id}/registrations", route.registrationController.Register)

		r.With(route.rateLimitMiddleware.Limit("submission", 10, time.Minute)).
			Post("/applications", route.applicationController.Submit)
		r.With(route.rateLimitMiddleware.Limit("submission", 10, time.Minute)).
			Post("/teacher-enrollments", route.enrollmentController.Submit)

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(route.authMiddleware.VerifyToken)

			r.Get("/auth/me", route.authController.GetCurrentUser)

			// Staff surface.
			r.Group(func(r chi.Router) {
				r.Use(route.authMiddleware.RequireStaff)

				r.Route("/admin/contents", func(r chi.Router) {
					r.Get("/", route.contentController.ListAdmin)
					r.Post("/", route.contentController.Create)
					r.Get("/{id}", route.contentController.Get)
					r.Put("/{id}", route.contentController.Update)
					r.Post("/{id}/review", route.contentController.Review)
					r.Post("/{id}/archive", route.contentController.Archive)
				})

				r.Route("/admin/events", func(r chi.Router) {
					r.Get("/", route.eventController.ListAdmin)
					r.Post("/", route.eventController.Create)
					r.Get("/{id}", route.eventController.Get)
					r.Put("/{id}", route.eventController.Update)
					r.Post("/{id}/review", route.eventController.Review)
					r.Post("/{id}/cancel", route.eventController.Cancel)
					r.Get("/{id}/registrations", route.registrationController.ListByEvent)
					r.Get("/{id}/registrations/export", route.registrationController.ExportCSV)
				})

				r.Get("/admin/applications", route.applicationController.List)
				r.Get("/admin/teacher-enrollments", route.enrollmentController.List)
				r.Get("/admin/teacher-enrollments/export", route.enrollmentController.ExportCSV)

				r.Post("/admin/media/upload", route.mediaController.Upload)
			})

			// Admin-only surface.
			r.Group(func(r chi.Router) {
				r.Use(route.authMiddleware.RequireAdmin)

				r.Route("/admin/users", func(r chi.Router) {
					r.Get("/", route.userController.List)
					r.Get("/{id}", route.userController.Get)
					r.Put("/{id}", route.userController.Update)
					r.Delete("/{id}", route.userController.Delete)
				})

				r.Get("/admin/activity-logs", route.activityLogController.List)
			})
		})
	})
}
