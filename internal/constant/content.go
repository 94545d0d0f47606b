package constant

const (
	ContentTypeArticle = "article"
	ContentTypeVideo   = "video"
	ContentTypeAudio   = "audio"
	ContentTypeGallery = "gallery"

	ContentStatusDraft         = "draft"
	ContentStatusPendingReview = "pending_review"
	ContentStatusPublished     = "published"
	ContentStatusArchived      = "archived"
)

var ContentTypes = []string{
	ContentTypeArticle,
	ContentTypeVideo,
	ContentTypeAudio,
	ContentTypeGallery,
}
