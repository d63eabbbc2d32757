package uow

import (
	"context"

	"github.com/corray333/storefront/internal/dal/interfaces/inotificationrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/istockrepo"
	"github.com/corray333/storefront/internal/dal/postgres"
	notificationrepo "github.com/corray333/storefront/internal/dal/repositories/notification/postgres"
	orderrepo "github.com/corray333/storefront/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/corray333/storefront/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/corray333/storefront/internal/dal/repositories/outbox/postgres"
	stockrepo "github.com/corray333/storefront/internal/dal/repositories/stock/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type unitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx

	orderRepo        iorderrepo.IOrderRepository
	orderItemRepo    iorderitemrepo.IOrderItemRepository
	stockRepo        istockrepo.IStockRepository
	notificationRepo inotificationrepo.INotificationRepository
	outboxRepo       ioutboxrepo.IOutboxRepository
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	u := &unitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.Querier) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.stockRepo = stockrepo.NewPostgresStockRepository(conn)
	u.notificationRepo = notificationrepo.NewPostgresNotificationRepository(conn)
	u.outboxRepo = outboxrepo.NewOutboxRepository(conn)
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) StockRepository() istockrepo.IStockRepository {
	return u.stockRepo
}

func (u *unitOfWork) NotificationRepository() inotificationrepo.INotificationRepository {
	return u.notificationRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
