package api

import (
	"context"
	"fmt"
	"io"
)

const documentsBase = "/api/documents/documents/"

type DocumentFilters struct {
	Type      string
	Candidate int
	Process   int
	Search    string
}

func (f DocumentFilters) filters() Filters {
	return Filters{}.
		With("document_type", f.Type).
		WithInt("candidate", f.Candidate).
		WithInt("profile", f.Process).
		With("search", f.Search)
}

func (a *API) ListDocuments(ctx context.Context, f DocumentFilters) ([]Record, error) {
	return a.list(ctx, documentsBase, f.filters())
}

func (a *API) GetDocument(ctx context.Context, id int) (Record, error) {
	return a.get(ctx, fmt.Sprintf("%s%d/", documentsBase, id))
}

func (a *API) CreateDocument(ctx context.Context, data Record) (Record, error) {
	return a.create(ctx, documentsBase, data)
}

func (a *API) UpdateDocument(ctx context.Context, id int, data Record) (Record, error) {
	return a.update(ctx, fmt.Sprintf("%s%d/", documentsBase, id), data)
}

func (a *API) DeleteDocument(ctx context.Context, id int) error {
	return a.delete(ctx, fmt.Sprintf("%s%d/", documentsBase, id))
}

// GenerateDocument renders a document from a template for a candidate or
// process and returns the created record.
func (a *API) GenerateDocument(ctx context.Context, data Record) (Record, error) {
	return a.action(ctx, documentsBase+"generate/", data)
}

func (a *API) ListDocumentTemplates(ctx context.Context) ([]Record, error) {
	return a.list(ctx, "/api/documents/templates/", nil)
}

func (a *API) DocumentStatistics(ctx context.Context) (Record, error) {
	return a.get(ctx, documentsBase+"statistics/")
}

// UploadDocumentFile attaches a file to an existing document record.
func (a *API) UploadDocumentFile(ctx context.Context, documentID int, filename string, file io.Reader, extra map[string]string) (Record, error) {
	endpoint := fmt.Sprintf("%s%d/upload/", documentsBase, documentID)
	return a.uploadFile(ctx, endpoint, filename, file, extra)
}

// DownloadDocument saves a document's file into destDir, returning the path.
func (a *API) DownloadDocument(ctx context.Context, id int, destDir string) (string, error) {
	endpoint := fmt.Sprintf("%s%d/download/", documentsBase, id)
	return a.download(ctx, endpoint, destDir, fmt.Sprintf("document-%d", id))
}
