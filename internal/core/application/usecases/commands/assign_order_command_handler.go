package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/process"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/observability"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrAddressNotFound      = errors.New("address not found")
	ErrInvalidPaymentMethod = errors.New("payment method is invalid")
	ErrInvalidStatus        = errors.New("order status does not allow this operation")
	ErrNoSuitableStore      = errors.New("no suitable store found")
	ErrNoPendingOrders      = errors.New("no pending orders")
)

// AssignOrderCommandHandler orchestrates the first store assignment.
// Resolves the delivery address, ranks the store fleet by distance, and routes
// the order to the nearest store. The order update and the transition record
// are written in one transaction; the "store-assigned" notification is
// published best-effort after commit.
//
// Example:
//
//	handler := NewAssignOrderCommandHandler(uowFactory, stores, addresses, publisher, logger)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderNotFound):
//	    log.Println("Unknown order")
//	case errors.Is(err, ErrNoSuitableStore):
//	    log.Println("No store to route to")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignOrderCommandHandler struct {
	uowFactory      UoWFactory
	storeRepo       ports.StoreRepository
	addressResolver ports.AddressResolver
	publisher       ports.EventPublisher
	logger          *slog.Logger
}

// NewAssignOrderCommandHandler creates a handler for first store assignments.
func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	storeRepo ports.StoreRepository,
	addressResolver ports.AddressResolver,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory:      uowFactory,
		storeRepo:       storeRepo,
		addressResolver: addressResolver,
		publisher:       publisher,
		logger:          logger.With("component", "assign_order_handler"),
	}
}

// Handle processes the assignment command.
//
// Precondition failures (ErrOrderNotFound, ErrInvalidPaymentMethod,
// ErrAddressNotFound, ErrInvalidStatus, ErrNoSuitableStore) abort with no
// state change. On success the order is AssignedToStore with a matching
// ledger record committed atomically.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, command AssignOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := h.getOrder(ctx, orderRepo, command)
	if err != nil {
		return err
	}

	if ord.Status() != order.Pending {
		return ErrInvalidStatus
	}

	if err = ord.PaymentMethod().Validate(); err != nil {
		return ErrInvalidPaymentMethod
	}

	address, err := h.addressResolver.Resolve(ctx, ord.AddressID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrAddressNotFound
	}
	if err != nil {
		return err
	}

	stores, err := h.storeRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	candidates, err := services.NewStoreRanker().Rank(address.Location, stores, 1)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return ErrNoSuitableStore
	}

	if err = ord.AssignToStore(candidates[0].StoreID); err != nil {
		return err
	}

	record, err := process.NewRecord(ord.ID(), ord.Status(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.ProcessRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	observability.OrdersAssigned.Inc()
	h.publishStoreAssigned(ctx, ord)

	return nil
}

// getOrder loads the targeted order, or the oldest pending one when the
// command carries no order ID.
func (h AssignOrderCommandHandler) getOrder(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	command AssignOrderCommand,
) (*order.Order, error) {
	if orderID := command.OrderID(); orderID != nil {
		ord, err := orderRepo.Get(ctx, *orderID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, ErrOrderNotFound
		}
		return ord, err
	}

	ord, err := orderRepo.GetFirstInPendingStatus(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoPendingOrders
	}
	return ord, err
}

// publishStoreAssigned notifies downstream consumers about the assignment.
// Publishing is best-effort: a failure is logged and never fails the command.
func (h AssignOrderCommandHandler) publishStoreAssigned(ctx context.Context, ord *order.Order) {
	storeID := ord.Store()
	if storeID == nil {
		return
	}

	event := ports.StoreAssignedEvent{
		OrderID: ord.ID().String(),
		StoreID: storeID.String(),
	}
	if err := h.publisher.Publish(ctx, ports.TopicStoreAssigned, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish store assignment",
			"order_id", ord.ID().String(), "error", err)
	}
}
