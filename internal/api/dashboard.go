package api

import "context"

// DashboardStats returns the aggregate counters shown on the landing view.
func (a *API) DashboardStats(ctx context.Context) (Record, error) {
	return a.get(ctx, "/api/accounts/users/dashboard-stats/")
}

// RecentActivity lists the latest recorded user actions.
func (a *API) RecentActivity(ctx context.Context, limit int) ([]Record, error) {
	return a.list(ctx, "/api/accounts/activities/", Filters{}.WithInt("limit", limit))
}
