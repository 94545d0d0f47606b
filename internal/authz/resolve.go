package authz

// Disposition is the outcome of resolving a submit action against the actor's
// role. "publish" is abstract: contents map it to the published status, events
// map it to the temporal status derived from their dates.
type Disposition string

const (
	DispositionDraft         Disposition = "draft"
	DispositionPendingReview Disposition = "pending_review"
	DispositionPublish       Disposition = "publish"
	DispositionKeep          Disposition = "keep"
)

// ResolveStatus computes the target disposition for a create or edit request.
// hasFlags reports whether the request carried any status hint; without hints
// a create lands in draft and an edit keeps its current status. An unqualified
// auto-publish request is silently downgraded to pending review, never
// rejected.
func ResolveStatus(role string, saveAsDraft, autoPublish, hasFlags, isEdit bool) Disposition {
	if !hasFlags {
		if isEdit {
			return DispositionKeep
		}
		return DispositionDraft
	}
	if saveAsDraft {
		return DispositionDraft
	}
	if autoPublish && CanAutoPublish(role) {
		return DispositionPublish
	}
	return DispositionPendingReview
}
