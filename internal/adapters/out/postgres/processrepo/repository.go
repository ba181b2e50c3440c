package processrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/process"

	"gorm.io/gorm"
)

// GormProcessRepository implements ProcessRepository using GORM.
type GormProcessRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProcessRepository creates a new GORM transition ledger repository.
func NewGormProcessRepository(db *gorm.DB, tracker aggregateTracker) *GormProcessRepository {
	return &GormProcessRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a new transition record.
func (r *GormProcessRepository) Add(ctx context.Context, record *process.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// GetByOrderID retrieves all transition records of one order, oldest first.
// Returns an empty slice for orders with no recorded transitions.
func (r *GormProcessRepository) GetByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*process.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]*process.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, recordErr := toDomain(dto)
		if recordErr != nil {
			return nil, recordErr
		}
		records = append(records, record)
	}

	return records, nil
}
