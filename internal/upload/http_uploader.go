package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// HTTPUploader posts pending files from disk to a running upload endpoint.
type HTTPUploader struct {
	httpClient *http.Client
	url        string
}

func NewHTTPUploader(baseURL string) *HTTPUploader {
	return &HTTPUploader{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		url:        strings.TrimRight(baseURL, "/") + Path,
	}
}

func (u *HTTPUploader) Upload(ctx context.Context, files []PendingFile) (*Response, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range files {
		if err := appendFile(writer, f); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, &body)
	if err != nil {
		return nil, fmt.Errorf("build upload request failed: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response failed: %w", err)
	}

	// The endpoint answers rejected batches with a 4xx and a success=false
	// body, so the body is decoded regardless of status.
	var parsed Response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse upload response (status %d) failed: %w", resp.StatusCode, err)
	}
	return &parsed, nil
}

func appendFile(writer *multipart.Writer, f PendingFile) error {
	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open %s failed: %w", f.Name, err)
	}
	defer src.Close()

	name := f.Name
	if name == "" {
		name = filepath.Base(f.Path)
	}
	part, err := writer.CreateFormFile("files", name)
	if err != nil {
		return fmt.Errorf("create form part failed: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy %s failed: %w", name, err)
	}
	return nil
}
