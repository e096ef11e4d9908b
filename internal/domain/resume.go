package domain

import (
	"context"
	"fmt"
	"io"
	"time"
)

// ResumeContentType is served for every resume download regardless of extension
const ResumeContentType = "application/octet-stream"

// Resume is an uploaded candidate document. Skills and Keywords hold
// JSON-encoded string lists; empty means nothing was extracted.
type Resume struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	Skills     string    `json:"-"`
	Keywords   string    `json:"-"`
	RawText    string    `json:"-"`
}

// ObjectKey is the storage name of the resume binary: "{user_id}_{filename}"
func (r *Resume) ObjectKey() string {
	return fmt.Sprintf("%d_%s", r.UserID, r.Filename)
}

// ResumeOwner is the public projection of the uploading user
type ResumeOwner struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ResumeDetail is the view-resume payload
type ResumeDetail struct {
	ID         int64        `json:"id"`
	Filename   string       `json:"filename"`
	UploadedAt time.Time    `json:"uploaded_at"`
	User       *ResumeOwner `json:"user"`
	Skills     []string     `json:"skills"`
	Keywords   []string     `json:"keywords"`
	RawText    string       `json:"raw_text"`
}

// ResumeFile is an open resume binary ready to stream. Callers must Close Content.
type ResumeFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.ReadCloser
}

type ResumeRepository interface {
	GetByID(ctx context.Context, id int64) (*Resume, error)
	// GetByIDForUser only matches a resume owned by userID
	GetByIDForUser(ctx context.Context, id, userID int64) (*Resume, error)
}

// ResumeStore is the file-storage collaborator holding resume binaries
type ResumeStore interface {
	// Open returns the object and its size, or ErrFileNotFound
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
}
