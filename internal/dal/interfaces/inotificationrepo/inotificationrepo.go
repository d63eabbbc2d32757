package inotificationrepo

import (
	"context"

	"github.com/corray333/storefront/internal/service/models/notification"
)

// INotificationRepository is an interface for notification postgres repository.
type INotificationRepository interface {
	Insert(ctx context.Context, n notification.Notification) (*notification.Notification, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]notification.Notification, error)

	// DeleteByCustomerID clears the customer's feed ("mark all read").
	DeleteByCustomerID(ctx context.Context, customerID int64) error
}
