package api

import (
	"context"
	"fmt"
)

const reportsBase = "/api/reports/"

func (a *API) ListReports(ctx context.Context, reportType string) ([]Record, error) {
	return a.list(ctx, reportsBase, Filters{}.With("report_type", reportType))
}

// GenerateReport kicks off server-side report generation.
func (a *API) GenerateReport(ctx context.Context, data Record) (Record, error) {
	return a.action(ctx, reportsBase+"generate/", data)
}

// DownloadReport saves a generated report into destDir, returning the path.
func (a *API) DownloadReport(ctx context.Context, id int, destDir string) (string, error) {
	endpoint := fmt.Sprintf("%s%d/download/", reportsBase, id)
	return a.download(ctx, endpoint, destDir, fmt.Sprintf("report-%d", id))
}
