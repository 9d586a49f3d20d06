package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"recruitflow-go/internal/platform/errors"
)

// uploadFile sends a multipart form with a `file` field plus any extra
// fields. The multipart writer computes the Content-Type boundary, so the
// JSON defaults of the session client are bypassed; the bearer token is
// still attached by DoRaw.
func (a *API) uploadFile(ctx context.Context, endpoint, filename string, file io.Reader, extra map[string]string) (Record, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, errors.Wrap(errors.KindAPI, "upload", "create form file", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, errors.Wrap(errors.KindAPI, "upload", "copy file contents", err)
	}

	for key, value := range extra {
		if err := writer.WriteField(key, value); err != nil {
			return nil, errors.Wrap(errors.KindAPI, "upload", "write form field", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(errors.KindAPI, "upload", "finalize form", err)
	}

	resp, err := a.client.DoRaw(ctx, http.MethodPost, endpoint, writer.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var record Record
	if len(resp.Body) > 0 && resp.IsJSON() {
		if err := resp.Decode(&record); err != nil {
			return nil, err
		}
	}
	a.logger.InfoTag("API", "uploaded %s to %s", filename, endpoint)
	return record, nil
}
