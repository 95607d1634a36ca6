package file

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("file not found")
	ErrTooLarge        = errors.New("file exceeds the allowed size")
	ErrUnsupportedType = errors.New("file type is not allowed")
	ErrNotAnImage      = errors.New("file is not a decodable image")
	ErrNoThumbnail     = errors.New("file has no thumbnail")
)

// File is an uploaded object on disk plus its metadata row. Storage
// paths stay internal; clients address files only by ID.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for downloading a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for a file's thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
