package api

import (
	"context"
	"fmt"
)

const usersBase = "/api/accounts/users/"

type UserFilters struct {
	Role     string
	IsActive string
	Search   string
}

func (f UserFilters) filters() Filters {
	return Filters{}.
		With("role", f.Role).
		With("is_active", f.IsActive).
		With("search", f.Search)
}

func (a *API) ListTeamMembers(ctx context.Context, f UserFilters) ([]Record, error) {
	return a.list(ctx, usersBase, f.filters())
}

func (a *API) GetTeamMember(ctx context.Context, id int) (Record, error) {
	return a.get(ctx, fmt.Sprintf("%s%d/", usersBase, id))
}

func (a *API) CreateTeamMember(ctx context.Context, data Record) (Record, error) {
	return a.create(ctx, usersBase, data)
}

func (a *API) UpdateTeamMember(ctx context.Context, id int, data Record) (Record, error) {
	return a.update(ctx, fmt.Sprintf("%s%d/", usersBase, id), data)
}

func (a *API) DeleteTeamMember(ctx context.Context, id int) error {
	return a.delete(ctx, fmt.Sprintf("%s%d/", usersBase, id))
}
