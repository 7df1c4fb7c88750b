package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"disputedesk/internal/model"
	"disputedesk/internal/pkg/pdfextract"
	"disputedesk/internal/upload"
)

const previewMaxLen = 2000

var (
	errExtensionNotAllowed = errors.New("file type not allowed")
	errFileTooLarge        = errors.New("file exceeds the size limit")
)

// IncomingFile is one file handed to the upload service, from a multipart
// form or from the staging area.
type IncomingFile struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

func FromMultipart(fh *multipart.FileHeader) IncomingFile {
	return IncomingFile{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func FromPending(p upload.PendingFile) IncomingFile {
	return IncomingFile{
		Name: p.Name,
		Size: p.Size,
		Open: func() (io.ReadCloser, error) {
			return os.Open(p.Path)
		},
	}
}

type UploadOptions struct {
	Dir               string
	StagingDir        string
	MaxFileSize       int64
	AllowedExtensions []string
}

// UploadService stores supporting documents as assets and keeps the staging
// area behind each portal's pending list.
type UploadService struct {
	assets  AssetStore
	opts    UploadOptions
	allowed map[string]bool
	newID   func() string
	now     func() time.Time
}

func NewUploadService(assets AssetStore, opts UploadOptions, newID func() string) *UploadService {
	allowed := make(map[string]bool, len(opts.AllowedExtensions))
	for _, ext := range opts.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = 10 << 20
	}
	return &UploadService{
		assets:  assets,
		opts:    opts,
		allowed: allowed,
		newID:   newID,
		now:     time.Now,
	}
}

// Store saves each file as an asset. A file that fails validation or storage
// is reported with success=false; the batch succeeds if any file was stored.
func (s *UploadService) Store(ctx context.Context, sessionID string, files []IncomingFile) (*upload.Response, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}

	resp := &upload.Response{
		Files:    make([]upload.UploadedFile, 0, len(files)),
		AssetIDs: []string{},
	}
	for _, f := range files {
		asset, err := s.storeOne(ctx, sessionID, f)
		if err != nil {
			slog.WarnContext(ctx, "store upload failed", "file_name", f.Name, "error", err)
			resp.Files = append(resp.Files, upload.UploadedFile{FileName: f.Name, Success: false})
			continue
		}
		size := asset.FileSize
		resp.Files = append(resp.Files, upload.UploadedFile{
			AssetID:  asset.AssetID,
			FileName: asset.FileName,
			FileSize: &size,
			Success:  true,
		})
		resp.AssetIDs = append(resp.AssetIDs, asset.AssetID)
	}

	resp.SuccessfulUploads = len(resp.AssetIDs)
	resp.Success = resp.SuccessfulUploads > 0
	switch {
	case !resp.Success:
		resp.Message = "No files could be uploaded"
	case resp.SuccessfulUploads < len(files):
		resp.Message = fmt.Sprintf("Uploaded %d of %d files", resp.SuccessfulUploads, len(files))
	}

	slog.InfoContext(ctx, "upload batch stored",
		"files", len(files), "successful_uploads", resp.SuccessfulUploads)
	return resp, nil
}

func (s *UploadService) storeOne(ctx context.Context, sessionID string, f IncomingFile) (*model.Asset, error) {
	name := filepath.Base(strings.TrimSpace(f.Name))
	ext := strings.ToLower(filepath.Ext(name))
	if name == "" || name == "." || !s.allowed[ext] {
		return nil, fmt.Errorf("%w: %q", errExtensionNotAllowed, ext)
	}
	if f.Size > s.opts.MaxFileSize {
		return nil, errFileTooLarge
	}

	assetID := s.newID()
	storedPath := filepath.Join(s.opts.Dir, assetID+ext)
	written, err := s.copyTo(storedPath, f)
	if err != nil {
		return nil, err
	}

	asset := &model.Asset{
		AssetID:     assetID,
		SessionID:   sessionID,
		FileName:    name,
		FileSize:    written,
		ContentType: f.ContentType,
		StoredPath:  storedPath,
		CreatedAt:   s.now(),
	}
	if ext == ".pdf" {
		s.summarize(ctx, asset)
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		_ = os.Remove(storedPath)
		return nil, err
	}
	return asset, nil
}

// copyTo writes f to path, failing once more than MaxFileSize bytes arrive.
func (s *UploadService) copyTo(path string, f IncomingFile) (int64, error) {
	src, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("open upload failed: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create stored file failed: %w", err)
	}
	written, err := io.Copy(dst, io.LimitReader(src, s.opts.MaxFileSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.opts.MaxFileSize {
		err = errFileTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	return written, nil
}

// summarize fills the page count and text preview of a stored PDF. Files
// that fail to parse are still kept.
func (s *UploadService) summarize(ctx context.Context, asset *model.Asset) {
	summary, err := pdfextract.Summarize(asset.StoredPath, previewMaxLen)
	if err != nil {
		slog.DebugContext(ctx, "pdf preview skipped", "asset_id", asset.AssetID, "error", err)
		return
	}
	asset.PageCount = summary.Pages
	asset.TextPreview = summary.Text
}

// Stage copies files into the staging area so they can sit in a session's
// pending list until the user uploads them. Copies stop one byte past
// MaxFileSize.
func (s *UploadService) Stage(ctx context.Context, sessionID string, files []IncomingFile) ([]upload.PendingFile, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	dir := filepath.Join(s.opts.StagingDir, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir failed: %w", err)
	}

	staged := make([]upload.PendingFile, 0, len(files))
	for _, f := range files {
		name := filepath.Base(strings.TrimSpace(f.Name))
		path := filepath.Join(dir, s.newID()+"-"+name)

		src, err := f.Open()
		if err != nil {
			s.Discard(ctx, staged...)
			return nil, fmt.Errorf("open staged file failed: %w", err)
		}
		dst, err := os.Create(path)
		if err != nil {
			src.Close()
			s.Discard(ctx, staged...)
			return nil, fmt.Errorf("create staged file failed: %w", err)
		}
		// A file over the limit is kept one byte past it so Store rejects it.
		written, err := io.Copy(dst, io.LimitReader(src, s.opts.MaxFileSize+1))
		src.Close()
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(path)
			s.Discard(ctx, staged...)
			return nil, fmt.Errorf("write staged file failed: %w", err)
		}
		staged = append(staged, upload.PendingFile{Name: name, Size: written, Path: path})
	}
	return staged, nil
}

// Discard removes staged copies. Paths outside the staging area are ignored.
func (s *UploadService) Discard(ctx context.Context, files ...upload.PendingFile) {
	root, err := filepath.Abs(s.opts.StagingDir)
	if err != nil {
		return
	}
	for _, f := range files {
		path, err := filepath.Abs(f.Path)
		if err != nil {
			continue
		}
		if rel, err := filepath.Rel(root, path); err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.WarnContext(ctx, "discard staged file failed", "path", path, "error", err)
		}
	}
}

// Uploader stores a session's staged files in-process, the same way the
// upload endpoint stores posted ones.
func (s *UploadService) Uploader(sessionID string) upload.Uploader {
	return upload.UploaderFunc(func(ctx context.Context, files []upload.PendingFile) (*upload.Response, error) {
		incoming := make([]IncomingFile, 0, len(files))
		for _, f := range files {
			incoming = append(incoming, FromPending(f))
		}
		return s.Store(ctx, sessionID, incoming)
	})
}
