package model

type MediaUploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
