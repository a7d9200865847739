package models

import "io"

// MediaFile is an uploaded file on its way to the media store.
type MediaFile struct {
	Filename    string    // Original client file name
	ContentType string    // MIME type reported by the client
	Size        int64     // Size in bytes
	Content     io.Reader // File content
}
