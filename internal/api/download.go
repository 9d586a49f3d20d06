package api

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"recruitflow-go/internal/platform/errors"
)

// download fetches a binary resource and materializes it under destDir. The
// bytes land in a temp file first and are renamed into place only on
// success, so a failed download never leaves a partial file behind.
func (a *API) download(ctx context.Context, endpoint, destDir, fallbackName string) (string, error) {
	resp, err := a.client.Do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	filename := filenameFromHeaders(resp.Header, fallbackName)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", errors.Wrap(errors.KindAPI, "download", "create destination dir", err)
	}

	tmp, err := os.CreateTemp(destDir, ".download-*")
	if err != nil {
		return "", errors.Wrap(errors.KindAPI, "download", "create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(resp.Body); err != nil {
		tmp.Close()
		return "", errors.Wrap(errors.KindAPI, "download", "write file", err)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(errors.KindAPI, "download", "close file", err)
	}

	dest := filepath.Join(destDir, filename)
	if err := os.Rename(tmpName, dest); err != nil {
		return "", errors.Wrap(errors.KindAPI, "download", "move file into place", err)
	}

	a.logger.InfoTag("API", "downloaded %s (%d bytes)", dest, len(resp.Body))
	return dest, nil
}

// filenameFromHeaders honors Content-Disposition, then guesses an extension
// from the content type.
func filenameFromHeaders(header http.Header, fallback string) string {
	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := filepath.Base(params["filename"]); name != "" && name != "." && name != "/" {
				return name
			}
		}
	}

	contentType := header.Get("Content-Type")
	ext := ".bin"
	switch {
	case strings.Contains(contentType, "pdf"):
		ext = ".pdf"
	case strings.Contains(contentType, "csv"):
		ext = ".csv"
	case strings.Contains(contentType, "json"):
		ext = ".json"
	}
	return fmt.Sprintf("%s%s", fallback, ext)
}
