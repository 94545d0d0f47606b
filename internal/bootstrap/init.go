package bootstrap

import (
	"SereneCMSAPI/internal/adapter"
	"SereneCMSAPI/internal/config"
	"SereneCMSAPI/internal/controller"
	"SereneCMSAPI/internal/middleware"
	"SereneCMSAPI/internal/repository"
	"SereneCMSAPI/internal/service"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Init wires repositories, services, and controllers together and returns the
// routed mux.
func Init(cfg *config.AppConfig, db *pgxpool.Pool, validator *validator.Validate, redisAdapter *adapter.RedisAdapter, s3Client *s3.Client, otpLimiter *config.RateLimiter) *chi.Mux {
	emailAdapter := adapter.NewEmailAdapter(cfg)
	storageAdapter := adapter.NewStorageAdapter(cfg, s3Client)

	otpRepository := repository.NewOTPRepository(db)
	userRepository := repository.NewUserRepository(db)
	contentRepository := repository.NewContentRepository(db)
	eventRepository := repository.NewEventRepository(db)
	registrationRepository := repository.NewRegistrationRepository(db)
	applicationRepository := repository.NewApplicationRepository(db)
	enrollmentRepository := repository.NewEnrollmentRepository(db)
	activityLogRepository := repository.NewActivityLogRepository(db)
	rateLimitRepository := repository.NewRateLimitRepository(redisAdapter)

	activityService := service.NewActivityService(activityLogRepository)
	otpService := service.NewOTPService(otpRepository, cfg, validator, emailAdapter, otpLimiter)
	authService := service.NewAuthService(userRepository, otpService, cfg, validator)
	userService := service.NewUserService(userRepository, validator, activityService)
	contentService := service.NewContentService(contentRepository, validator, activityService)
	eventService := service.NewEventService(eventRepository, validator, activityService)
	registrationService := service.NewRegistrationService(registrationRepository, eventRepository, otpService, validator)
	applicationService := service.NewApplicationService(applicationRepository, otpService, validator)
	enrollmentService := service.NewEnrollmentService(enrollmentRepository, otpService, validator)
	mediaService := service.NewMediaService(storageAdapter, cfg.S3MediaPrefix)

	otpController := controller.NewOTPController(otpService)
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	contentController := controller.NewContentController(contentService)
	eventController := controller.NewEventController(eventService)
	registrationController := controller.NewRegistrationController(registrationService)
	applicationController := controller.NewApplicationController(applicationService)
	enrollmentController := controller.NewEnrollmentController(enrollmentService)
	mediaController := controller.NewMediaController(mediaService)
	activityLogController := controller.NewActivityLogController(activityService)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(rateLimitRepository, cfg)

	mux := config.NewChi(cfg)
	route := NewRoute(
		mux,
		authMiddleware,
		rateLimitMiddleware,
		otpController,
		authController,
		userController,
		contentController,
		eventController,
		registrationController,
		applicationController,
		enrollmentController,
		mediaController,
		activityLogController,
	)
	route.Register()

	return mux
}
