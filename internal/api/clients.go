package api

import (
	"context"
	"fmt"
)

const clientsBase = "/api/clients/"

type ClientFilters struct {
	Status   string
	Industry string
	Search   string
}

func (f ClientFilters) filters() Filters {
	return Filters{}.
		With("status", f.Status).
		With("industry", f.Industry).
		With("search", f.Search)
}

func (a *API) ListClients(ctx context.Context, f ClientFilters) ([]Record, error) {
	return a.list(ctx, clientsBase, f.filters())
}

func (a *API) GetClient(ctx context.Context, id int) (Record, error) {
	return a.get(ctx, fmt.Sprintf("%s%d/", clientsBase, id))
}

func (a *API) CreateClient(ctx context.Context, data Record) (Record, error) {
	return a.create(ctx, clientsBase, data)
}

func (a *API) UpdateClient(ctx context.Context, id int, data Record) (Record, error) {
	return a.update(ctx, fmt.Sprintf("%s%d/", clientsBase, id), data)
}

func (a *API) DeleteClient(ctx context.Context, id int) error {
	return a.delete(ctx, fmt.Sprintf("%s%d/", clientsBase, id))
}

func (a *API) ListClientContacts(ctx context.Context, clientID int) ([]Record, error) {
	return a.list(ctx, "/api/clients/contacts/", Filters{}.WithInt("client", clientID))
}
