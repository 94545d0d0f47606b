package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"SereneCMSAPI/internal/constant"

	"github.com/go-playground/validator/v10"
)

// Content bodies are a tagged union: the content type selects which variant
// the raw body must decode into. Unknown fields are rejected so a payload
// cannot smuggle another variant's shape.

type ArticleBody struct {
	Markdown string `json:"markdown" validate:"required"`
	Excerpt  string `json:"excerpt" validate:"max=500"`
	CoverURL string `json:"cover_url" validate:"omitempty,url"`
}

type VideoBody struct {
	VideoURL        string `json:"video_url" validate:"required,url"`
	DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
	ThumbnailURL    string `json:"thumbnail_url" validate:"omitempty,url"`
}

type AudioBody struct {
	AudioURL        string `json:"audio_url" validate:"required,url"`
	DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
}

type GalleryImage struct {
	URL     string `json:"url" validate:"required,url"`
	Caption string `json:"caption" validate:"max=255"`
}

type GalleryBody struct {
	Images []GalleryImage `json:"images" validate:"required,min=1,dive"`
}

// DecodeContentBody validates raw against the variant selected by
// contentType and returns the canonical re-encoded form.
func DecodeContentBody(v *validator.Validate, contentType string, raw json.RawMessage) (json.RawMessage, error) {
	var body any
	switch contentType {
	case constant.ContentTypeArticle:
		body = &ArticleBody{}
	case constant.ContentTypeVideo:
		body = &VideoBody{}
	case constant.ContentTypeAudio:
		body = &AudioBody{}
	case constant.ContentTypeGallery:
		body = &GalleryBody{}
	default:
		return nil, fmt.Errorf("unknown content type %q", contentType)
	}

	if err := decodeStrict(raw, body); err != nil {
		return nil, fmt.Errorf("invalid %s body: %w", contentType, err)
	}
	if err := v.Struct(body); err != nil {
		return nil, fmt.Errorf("invalid %s body: %w", contentType, err)
	}

	return json.Marshal(body)
}

func decodeStrict(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
