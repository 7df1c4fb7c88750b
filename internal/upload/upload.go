package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"disputedesk/internal/notify"
)

// Path is the fixed local upload endpoint.
const Path = "/api/upload"

const DefaultMaxFiles = 5

var (
	ErrNothingToUpload = errors.New("no files selected")
	ErrUploadRejected  = errors.New("upload rejected")
	ErrIndexOutOfRange = errors.New("pending file index out of range")
)

// PendingFile is a file picked or dropped but not yet uploaded.
type PendingFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Path string `json:"path,omitempty"`
}

type UploadedFile struct {
	AssetID  string `json:"asset_id"`
	FileName string `json:"file_name"`
	FileSize *int64 `json:"file_size,omitempty"`
	Success  bool   `json:"success"`
}

// Response is the upload endpoint's JSON body.
type Response struct {
	Success           bool           `json:"success"`
	Files             []UploadedFile `json:"files"`
	AssetIDs          []string       `json:"asset_ids"`
	SuccessfulUploads int            `json:"successful_uploads"`
	Message           string         `json:"message,omitempty"`
}

type Uploader interface {
	Upload(ctx context.Context, files []PendingFile) (*Response, error)
}

// UploaderFunc adapts a function to Uploader.
type UploaderFunc func(ctx context.Context, files []PendingFile) (*Response, error)

func (f UploaderFunc) Upload(ctx context.Context, files []PendingFile) (*Response, error) {
	return f(ctx, files)
}

// Queue is the upload widget state: a capped, ordered pending list plus the
// records returned by the last successful upload. It is plain data so it can
// live inside a serialized portal session; callers serialize access to it.
type Queue struct {
	MaxFiles int            `json:"max_files"`
	Pending  []PendingFile  `json:"pending"`
	Uploaded []UploadedFile `json:"uploaded"`
}

func NewQueue(maxFiles int) Queue {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	return Queue{MaxFiles: maxFiles}
}

func (q *Queue) capacity() int {
	if q.MaxFiles <= 0 {
		return DefaultMaxFiles
	}
	return q.MaxFiles
}

// Room is how many more files fit before the cap.
func (q *Queue) Room() int {
	return max(q.capacity()-len(q.Pending), 0)
}

// Overflow reports that files were turned away at the cap.
func (q *Queue) Overflow(ctx context.Context, n notify.Notifier) {
	n.Notify(ctx, notify.KindError, fmt.Sprintf("Maximum %d files allowed", q.capacity()), notify.ValidationDelay)
}

// Add appends files up to the cap and returns the ones that did not fit.
// Picker and drag-and-drop both end up here. Any overflow emits exactly one
// error notification.
func (q *Queue) Add(ctx context.Context, n notify.Notifier, files ...PendingFile) []PendingFile {
	remaining := q.Room()
	accepted := files
	var dropped []PendingFile
	if len(files) > remaining {
		accepted = files[:remaining]
		dropped = append(dropped, files[remaining:]...)
	}
	q.Pending = append(q.Pending, accepted...)

	if len(dropped) > 0 {
		q.Overflow(ctx, n)
	}
	return dropped
}

func (q *Queue) Remove(index int) (PendingFile, error) {
	if index < 0 || index >= len(q.Pending) {
		return PendingFile{}, ErrIndexOutOfRange
	}
	removed := q.Pending[index]
	q.Pending = append(q.Pending[:index:index], q.Pending[index+1:]...)
	return removed, nil
}

// Upload sends every pending file. On success the uploaded list is replaced
// with the returned records, onComplete receives the asset ids and the
// pending list is cleared. On any failure the pending list is left as is.
func (q *Queue) Upload(
	ctx context.Context,
	u Uploader,
	n notify.Notifier,
	onComplete func(assetIDs []string, files []UploadedFile),
) (*Response, error) {
	if len(q.Pending) == 0 {
		n.Notify(ctx, notify.KindError, "No files selected", notify.ValidationDelay)
		return nil, ErrNothingToUpload
	}
	n.Notify(ctx, notify.KindInfo, "Uploading files...", notify.GeneralDelay)

	batch := make([]PendingFile, len(q.Pending))
	copy(batch, q.Pending)

	resp, err := u.Upload(ctx, batch)
	if err != nil {
		slog.ErrorContext(ctx, "upload failed", "files", len(batch), "error", err)
		n.Notify(ctx, notify.KindError, "Failed to upload files. Please try again.", notify.GeneralDelay)
		return nil, err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Upload failed"
		}
		n.Notify(ctx, notify.KindError, msg, notify.GeneralDelay)
		return resp, ErrUploadRejected
	}

	q.Uploaded = append([]UploadedFile(nil), resp.Files...)
	n.Notify(ctx, notify.KindSuccess, fmt.Sprintf("Successfully uploaded %d file(s)", resp.SuccessfulUploads), notify.GeneralDelay)
	if onComplete != nil {
		onComplete(resp.AssetIDs, resp.Files)
	}
	q.Pending = nil
	return resp, nil
}
