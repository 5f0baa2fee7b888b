package service

import (
	"context"
	"io"
)

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

type UploadResult struct {
	URL        string
	ObjectName string
	Size       int64
}

// MediaUploadService is the external media collaborator. One call is one
// attempt; there is no retry or backoff here.
type MediaUploadService interface {
	Upload(ctx context.Context, file io.Reader, contentType string, kind MediaKind, folder string) (*UploadResult, error)
	Delete(ctx context.Context, fileURL string) error
	Close() error
}
