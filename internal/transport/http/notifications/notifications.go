package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/models/notification"
	"github.com/corray333/storefront/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	ListNotifications(ctx context.Context, act actor.Actor) ([]notification.Notification, error)
	ClearNotifications(ctx context.Context, act actor.Actor) error
}

// List handles the list notifications request.
func List(w http.ResponseWriter, r *http.Request, act actor.Actor, service service) {
	items, err := service.ListNotifications(r.Context(), act)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error listing notifications", "error", err)

		return
	}
	if items == nil {
		items = []notification.Notification{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		slog.Error("Error sending response for list notifications", "error", err)
	}
}

// Clear handles the clear notifications request. Clearing is a bulk
// delete, not a read flag.
func Clear(w http.ResponseWriter, r *http.Request, act actor.Actor, service service) {
	if err := service.ClearNotifications(r.Context(), act); err != nil {
		httperr.Write(w, err)
		slog.Error("Error clearing notifications", "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
