package notification

import "time"

// Notification is the durable record of a message shown to a customer.
// Customers clear their feed by bulk delete, there is no read flag.
type Notification struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customerId"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}
