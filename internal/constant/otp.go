package constant

const (
	OTPPurposeSignup               = "signup"
	OTPPurposeEventRegistration    = "event_registration"
	OTPPurposeVolunteerApplication = "volunteer_application"
	OTPPurposeTeacherApplication   = "teacher_application"
	OTPPurposeTeacherEnrollment    = "teacher_enrollment"

	OTPMaxAttempts = 5
)

var OTPPurposes = []string{
	OTPPurposeSignup,
	OTPPurposeEventRegistration,
	OTPPurposeVolunteerApplication,
	OTPPurposeTeacherApplication,
	OTPPurposeTeacherEnrollment,
}
