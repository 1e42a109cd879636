package domain

import "io"

// JSONMediaType is the only declared media type accepted for uploads.
const JSONMediaType = "application/json"

// UploadedFile is the file part of an upload request. Implementations only
// expose metadata until Open is called.
type UploadedFile interface {
	Filename() string
	// ContentType returns the media type declared by the client.
	ContentType() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// UploadRequest is one incoming question-generation request.
type UploadRequest struct {
	RequestID string
	// Identity is the authenticated subject; empty means unauthenticated.
	Identity    string
	File        UploadedFile
	Instruction string
}

// Authenticated reports whether the auth gate yielded an identity.
func (r *UploadRequest) Authenticated() bool {
	return r.Identity != ""
}
