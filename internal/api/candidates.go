package api

import (
	"context"
	"fmt"
	"io"
)

const candidatesBase = "/api/candidates/candidates/"

// CandidateFilters narrows a candidate listing.
type CandidateFilters struct {
	Status     string
	Search     string
	AssignedTo int
	Profile    int
}

func (f CandidateFilters) filters() Filters {
	return Filters{}.
		With("status", f.Status).
		With("search", f.Search).
		WithInt("assigned_to", f.AssignedTo).
		WithInt("profile", f.Profile)
}

func (a *API) ListCandidates(ctx context.Context, f CandidateFilters) ([]Record, error) {
	return a.list(ctx, candidatesBase, f.filters())
}

func (a *API) GetCandidate(ctx context.Context, id int) (Record, error) {
	return a.get(ctx, fmt.Sprintf("%s%d/", candidatesBase, id))
}

func (a *API) CreateCandidate(ctx context.Context, data Record) (Record, error) {
	return a.create(ctx, candidatesBase, data)
}

func (a *API) UpdateCandidate(ctx context.Context, id int, data Record) (Record, error) {
	return a.update(ctx, fmt.Sprintf("%s%d/", candidatesBase, id), data)
}

func (a *API) DeleteCandidate(ctx context.Context, id int) error {
	return a.delete(ctx, fmt.Sprintf("%s%d/", candidatesBase, id))
}

// UploadCV attaches a CV file to a candidate. Multipart, see upload.go.
func (a *API) UploadCV(ctx context.Context, candidateID int, filename string, file io.Reader) (Record, error) {
	endpoint := fmt.Sprintf("%s%d/upload-cv/", candidatesBase, candidateID)
	return a.uploadFile(ctx, endpoint, filename, file, nil)
}

// AnalyzeCV asks the backend to run CV analysis for a candidate.
func (a *API) AnalyzeCV(ctx context.Context, candidateID int) (Record, error) {
	endpoint := fmt.Sprintf("%s%d/analyze-cv/", candidatesBase, candidateID)
	return a.action(ctx, endpoint, nil)
}

// Candidate notes live under their own router prefix.
const candidateNotesBase = "/api/candidates/notes/"

func (a *API) ListCandidateNotes(ctx context.Context, candidateID int) ([]Record, error) {
	return a.list(ctx, candidateNotesBase, Filters{}.WithInt("candidate", candidateID))
}

func (a *API) CreateCandidateNote(ctx context.Context, data Record) (Record, error) {
	return a.create(ctx, candidateNotesBase, data)
}
