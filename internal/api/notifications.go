package api

import (
	"context"
	"fmt"
)

const notificationsBase = "/api/notifications/"

type NotificationFilters struct {
	Unread string
	Type   string
}

func (f NotificationFilters) filters() Filters {
	return Filters{}.
		With("unread", f.Unread).
		With("notification_type", f.Type)
}

func (a *API) ListNotifications(ctx context.Context, f NotificationFilters) ([]Record, error) {
	return a.list(ctx, notificationsBase, f.filters())
}

// MarkNotificationRead marks one notification as read.
func (a *API) MarkNotificationRead(ctx context.Context, id int) (Record, error) {
	endpoint := fmt.Sprintf("%s%d/mark-read/", notificationsBase, id)
	return a.action(ctx, endpoint, nil)
}

// MarkAllNotificationsRead marks every unread notification as read.
func (a *API) MarkAllNotificationsRead(ctx context.Context) (Record, error) {
	return a.action(ctx, notificationsBase+"mark-all-read/", nil)
}
