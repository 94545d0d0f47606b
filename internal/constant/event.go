package constant

const (
	EventTypeGroupMeditation = "group_meditation"
	EventTypeRetreat         = "retreat"
	EventTypeWorkshop        = "workshop"
	EventTypeTeacherTraining = "teacher_training"

	EventStatusDraft         = "draft"
	EventStatusPendingReview = "pending_review"
	EventStatusUpcoming      = "upcoming"
	EventStatusOngoing       = "ongoing"
	EventStatusCompleted     = "completed"
	EventStatusCancelled     = "cancelled"
)

var EventTypes = []string{
	EventTypeGroupMeditation,
	EventTypeRetreat,
	EventTypeWorkshop,
	EventTypeTeacherTraining,
}
