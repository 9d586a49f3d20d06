package api

import (
	"context"
	"fmt"
)

// Recruitment processes are "profiles" on the wire.
const processesBase = "/api/profiles/profiles/"

type ProcessFilters struct {
	Status   string
	Client   int
	Search   string
	Priority string
}

func (f ProcessFilters) filters() Filters {
	return Filters{}.
		With("status", f.Status).
		WithInt("client", f.Client).
		With("search", f.Search).
		With("priority", f.Priority)
}

func (a *API) ListProcesses(ctx context.Context, f ProcessFilters) ([]Record, error) {
	return a.list(ctx, processesBase, f.filters())
}

func (a *API) GetProcess(ctx context.Context, id int) (Record, error) {
	return a.get(ctx, fmt.Sprintf("%s%d/", processesBase, id))
}

func (a *API) CreateProcess(ctx context.Context, data Record) (Record, error) {
	return a.create(ctx, processesBase, data)
}

func (a *API) UpdateProcess(ctx context.Context, id int, data Record) (Record, error) {
	return a.update(ctx, fmt.Sprintf("%s%d/", processesBase, id), data)
}

func (a *API) DeleteProcess(ctx context.Context, id int) error {
	return a.delete(ctx, fmt.Sprintf("%s%d/", processesBase, id))
}

func (a *API) ListProcessHistory(ctx context.Context, processID int) ([]Record, error) {
	return a.list(ctx, "/api/profiles/profiles/history/", Filters{}.WithInt("profile", processID))
}
