package model

import (
	"encoding/json"
	"testing"

	"SereneCMSAPI/internal/constant"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeContentBodyVariants(t *testing.T) {
	v := validator.New()

	cases := []struct {
		name        string
		contentType string
		raw         string
		wantErr     bool
	}{
		{"article ok", constant.ContentTypeArticle, `{"markdown":"# Hi"}`, false},
		{"article missing markdown", constant.ContentTypeArticle, `{"excerpt":"short"}`, true},
		{"video ok", constant.ContentTypeVideo, `{"video_url":"https://cdn.example.com/v.mp4","duration_seconds":120}`, false},
		{"video bad url", constant.ContentTypeVideo, `{"video_url":"not a url"}`, true},
		{"audio ok", constant.ContentTypeAudio, `{"audio_url":"https://cdn.example.com/a.mp3"}`, false},
		{"gallery ok", constant.ContentTypeGallery, `{"images":[{"url":"https://cdn.example.com/1.jpg","caption":"one"}]}`, false},
		{"gallery empty", constant.ContentTypeGallery, `{"images":[]}`, true},
		{"unknown type", "podcast", `{}`, true},
		{"unknown field rejected", constant.ContentTypeArticle, `{"markdown":"# Hi","video_url":"https://x.test"}`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := DecodeContentBody(v, tc.contentType, json.RawMessage(tc.raw))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, json.Valid(out))
		})
	}
}
