package api

import (
	"context"
	"fmt"
	"net/http"

	"recruitflow-go/internal/session"
)

const evaluationsBase = "/api/evaluations/candidate-evaluations/"

type EvaluationFilters struct {
	Status    string
	Template  int
	Candidate int
	Passed    string
	Search    string
}

func (f EvaluationFilters) filters() Filters {
	return Filters{}.
		With("status", f.Status).
		WithInt("template", f.Template).
		WithInt("candidate", f.Candidate).
		With("passed", f.Passed).
		With("search", f.Search)
}

func (a *API) ListEvaluations(ctx context.Context, f EvaluationFilters) ([]Record, error) {
	return a.list(ctx, evaluationsBase, f.filters())
}

func (a *API) GetEvaluation(ctx context.Context, id int) (Record, error) {
	return a.get(ctx, fmt.Sprintf("%s%d/", evaluationsBase, id))
}

func (a *API) CreateEvaluation(ctx context.Context, data Record) (Record, error) {
	return a.create(ctx, evaluationsBase, data)
}

func (a *API) UpdateEvaluation(ctx context.Context, id int, data Record) (Record, error) {
	return a.update(ctx, fmt.Sprintf("%s%d/", evaluationsBase, id), data)
}

func (a *API) DeleteEvaluation(ctx context.Context, id int) error {
	return a.delete(ctx, fmt.Sprintf("%s%d/", evaluationsBase, id))
}

// ApproveEvaluation reviews an evaluation with a passing verdict.
func (a *API) ApproveEvaluation(ctx context.Context, id int, comments string) (Record, error) {
	return a.review(ctx, id, Record{"passed": true, "comments": comments})
}

// RejectEvaluation reviews an evaluation with a failing verdict.
func (a *API) RejectEvaluation(ctx context.Context, id int, comments string) (Record, error) {
	return a.review(ctx, id, Record{"passed": false, "comments": comments})
}

func (a *API) review(ctx context.Context, id int, verdict Record) (Record, error) {
	endpoint := fmt.Sprintf("%s%d/review/", evaluationsBase, id)
	return a.action(ctx, endpoint, verdict)
}

func (a *API) ListEvaluationTemplates(ctx context.Context, category string) ([]Record, error) {
	return a.list(ctx, "/api/evaluations/templates/", Filters{}.With("category", category))
}

func (a *API) EvaluationStatistics(ctx context.Context) (Record, error) {
	return a.get(ctx, evaluationsBase+"statistics/")
}

// action POSTs to a sub-path of a single resource and decodes the reply.
func (a *API) action(ctx context.Context, endpoint string, body any) (Record, error) {
	resp, err := a.client.Do(ctx, http.MethodPost, endpoint, &session.Options{Body: body})
	if err != nil {
		return nil, err
	}

	var record Record
	if len(resp.Body) > 0 && resp.IsJSON() {
		if err := resp.Decode(&record); err != nil {
			return nil, err
		}
	}
	return record, nil
}
