package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/process"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/observability"
)

const (
	rejectionLimitReason = "cancelled after 3 rejections"
	noStoreReason        = "no suitable store found"
)

// StoreRecommender picks a reassignment target for a rejected order.
// A nil store ID with a nil error means no suitable store exists.
type StoreRecommender interface {
	Recommend(ctx context.Context, request ports.RecommendationRequest) (*kernel.UUID, error)
}

// ManagerDecisionCommandHandler applies a store manager's accept or reject
// verdict to an assigned order.
//
// Accept issues a fulfillment token and, for pay-on-delivery orders, publishes
// an enriched order-created notification. Reject increments the rejection
// ledger and either reassigns the order through the recommender or cancels
// it; an order never rests in the rejected status. All state changes of one
// decision are committed in a single transaction, with notifications
// published best-effort afterwards.
type ManagerDecisionCommandHandler struct {
	uowFactory      UoWFactory
	recommender     StoreRecommender
	tokenGenerator  ports.FulfillmentTokenGenerator
	addressResolver ports.AddressResolver
	directory       ports.Directory
	publisher       ports.EventPublisher
	logger          *slog.Logger
}

// NewManagerDecisionCommandHandler creates a handler for manager decisions.
func NewManagerDecisionCommandHandler(
	uowFactory UoWFactory,
	recommender StoreRecommender,
	tokenGenerator ports.FulfillmentTokenGenerator,
	addressResolver ports.AddressResolver,
	directory ports.Directory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ManagerDecisionCommandHandler {
	return ManagerDecisionCommandHandler{
		uowFactory:      uowFactory,
		recommender:     recommender,
		tokenGenerator:  tokenGenerator,
		addressResolver: addressResolver,
		directory:       directory,
		publisher:       publisher,
		logger:          logger.With("component", "manager_decision_handler"),
	}
}

// Handle processes the decision command.
//
// Returns ErrOrderNotFound for unknown orders and ErrInvalidStatus when the
// decision is neither accept nor reject, the order is in a terminal status,
// or the deciding store is not the assigned one. Precondition failures leave
// the order untouched.
func (h ManagerDecisionCommandHandler) Handle(ctx context.Context, command ManagerDecisionCommand) error {
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

	ord, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if ord.Status().IsTerminal() {
		return ErrInvalidStatus
	}

	switch command.Decision() {
	case DecisionAccept:
		return h.accept(ctx, uow, ord, command)
	case DecisionReject:
		return h.reject(ctx, uow, ord, command)
	default:
		return ErrInvalidStatus
	}
}

// accept marks the order as accepted by the assigned store's manager and
// issues the fulfillment token used to verify the physical handover.
func (h ManagerDecisionCommandHandler) accept(
	ctx context.Context,
	uow UoW,
	ord *order.Order,
	command ManagerDecisionCommand,
) error {
	assignedStore := ord.Store()
	if assignedStore == nil || !assignedStore.IsEqual(command.StoreID()) {
		return ErrInvalidStatus
	}

	token, err := h.tokenGenerator.Generate(ord.ID())
	if err != nil {
		return err
	}

	if err = ord.Accept(token, time.Now().UTC()); err != nil {
		return mapOrderStateError(err)
	}

	record, err := process.NewRecord(ord.ID(), ord.Status(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.ProcessRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if ord.PaymentMethod().IsPayOnDelivery() {
		h.publishOrderCreated(ctx, ord)
	}

	return nil
}

// reject applies a manager rejection and immediately resolves the order's
// next state: reassignment via the recommender, or cancellation when the
// rejection limit is reached, no suitable store exists, or the reassignment
// attempt itself fails.
func (h ManagerDecisionCommandHandler) reject(
	ctx context.Context,
	uow UoW,
	ord *order.Order,
	command ManagerDecisionCommand,
) error {
	// The store that rejected last time joins the exclusion list below;
	// captured before Reject overwrites it.
	previouslyRejected := ord.LastRejectedStore()

	if err := ord.Reject(command.StoreID(), command.Reason()); err != nil {
		return mapOrderStateError(err)
	}

	records := make([]*process.Record, 0, 2)

	// Both ledger records of one rejection share a single captured timestamp,
	// with the outcome advanced by a microsecond. The history read orders by
	// created_at, so the rejection must sort strictly before its outcome.
	now := time.Now().UTC()

	rejectedRecord, err := process.NewRecord(ord.ID(), ord.Status(), now)
	if err != nil {
		return err
	}
	records = append(records, rejectedRecord)

	if ord.HasReachedRejectionLimit() {
		if err = ord.Cancel(rejectionLimitReason); err != nil {
			return err
		}
	} else if err = h.resolveReassignment(ctx, ord, command.StoreID(), previouslyRejected); err != nil {
		return err
	}

	outcomeRecord, err := process.NewRecord(ord.ID(), ord.Status(), now.Add(time.Microsecond))
	if err != nil {
		return err
	}
	records = append(records, outcomeRecord)

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	for _, record := range records {
		if err = uow.ProcessRepository().Add(ctx, record); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.reportRejectionOutcome(ctx, ord)

	return nil
}

// resolveReassignment asks the recommender for the order's next store. A nil
// recommendation cancels the order; an unexpected failure also cancels it
// with the failure message, so the order never rests in the rejected status.
func (h ManagerDecisionCommandHandler) resolveReassignment(
	ctx context.Context,
	ord *order.Order,
	rejectedStoreID kernel.UUID,
	previouslyRejected *kernel.UUID,
) error {
	newStoreID, err := h.recommend(ctx, ord, rejectedStoreID, previouslyRejected)

	switch {
	case err != nil:
		h.logger.WarnContext(ctx, "reassignment failed, cancelling order",
			"order_id", ord.ID().String(), "error", err)
		return ord.Cancel(err.Error())
	case newStoreID == nil:
		return ord.Cancel(noStoreReason)
	default:
		return ord.AssignToStore(*newStoreID)
	}
}

// recommend resolves the order's delivery coordinates and queries the
// recommender, excluding every store that has rejected this order.
func (h ManagerDecisionCommandHandler) recommend(
	ctx context.Context,
	ord *order.Order,
	rejectedStoreID kernel.UUID,
	previouslyRejected *kernel.UUID,
) (*kernel.UUID, error) {
	address, err := h.addressResolver.Resolve(ctx, ord.AddressID())
	if err != nil {
		return nil, err
	}

	excluded := []kernel.UUID{rejectedStoreID}
	if previouslyRejected != nil && !previouslyRejected.IsEqual(rejectedStoreID) {
		excluded = append(excluded, *previouslyRejected)
	}

	return h.recommender.Recommend(ctx, ports.RecommendationRequest{
		OrderID:          ord.ID(),
		ExcludedStoreIDs: excluded,
		Lines:            ord.Lines(),
		Origin:           address.Location,
	})
}

// reportRejectionOutcome updates the outcome counters and publishes the
// post-rejection notification. Publish failures are logged, never returned.
func (h ManagerDecisionCommandHandler) reportRejectionOutcome(ctx context.Context, ord *order.Order) {
	observability.OrdersRejected.Inc()

	switch ord.Status() {
	case order.AssignedToStore:
		observability.OrdersAssigned.Inc()
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
	case order.Cancelled:
		observability.OrdersCancelled.Inc()
		event := ports.OrderCancelledEvent{
			OrderID: ord.ID().String(),
			Reason:  ord.Reason(),
		}
		if err := h.publisher.Publish(ctx, ports.TopicOrderCancelled, event); err != nil {
			h.logger.WarnContext(ctx, "failed to publish order cancellation",
				"order_id", ord.ID().String(), "error", err)
		}
	default:
	}
}

// publishOrderCreated builds and publishes the enriched pay-on-delivery
// notification. Enrichment lookups and the publish itself are best-effort.
func (h ManagerDecisionCommandHandler) publishOrderCreated(ctx context.Context, ord *order.Order) {
	event, err := h.buildOrderCreatedEvent(ctx, ord)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to build order-created notification",
			"order_id", ord.ID().String(), "error", err)
		return
	}

	if err = h.publisher.Publish(ctx, ports.TopicOrderCreated, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order-created notification",
			"order_id", ord.ID().String(), "error", err)
	}
}

// buildOrderCreatedEvent resolves the customer, address line, and product
// names needed to format the downstream notification.
func (h ManagerDecisionCommandHandler) buildOrderCreatedEvent(
	ctx context.Context,
	ord *order.Order,
) (ports.OrderCreatedEvent, error) {
	user, err := h.directory.GetUser(ctx, ord.UserID())
	if err != nil {
		return ports.OrderCreatedEvent{}, err
	}

	address, err := h.addressResolver.Resolve(ctx, ord.AddressID())
	if err != nil {
		return ports.OrderCreatedEvent{}, err
	}

	productColorIDs := make([]kernel.UUID, 0, len(ord.Lines()))
	for _, line := range ord.Lines() {
		productColorIDs = append(productColorIDs, line.ProductColorID())
	}

	productColors, err := h.directory.GetProductColors(ctx, productColorIDs)
	if err != nil {
		return ports.OrderCreatedEvent{}, err
	}

	lines := make([]ports.OrderCreatedLine, 0, len(ord.Lines()))
	for _, line := range ord.Lines() {
		productColor := productColors[line.ProductColorID()]
		lines = append(lines, ports.OrderCreatedLine{
			ProductName: productColor.ProductName,
			ColorName:   productColor.ColorName,
			Quantity:    line.Quantity(),
			Price:       line.Price(),
		})
	}

	storeID := ""
	if assigned := ord.Store(); assigned != nil {
		storeID = assigned.String()
	}

	return ports.OrderCreatedEvent{
		OrderID:       ord.ID().String(),
		StoreID:       storeID,
		CustomerEmail: user.Email,
		CustomerName:  user.FullName,
		AddressLine:   address.AddressLine,
		Lines:         lines,
	}, nil
}

// mapOrderStateError converts aggregate transition failures into the
// operation-level invalid status error surfaced to callers.
func mapOrderStateError(err error) error {
	if errors.Is(err, errs.ErrValueIsInvalid) || errors.Is(err, order.ErrStoreMismatch) {
		return ErrInvalidStatus
	}
	return err
}
