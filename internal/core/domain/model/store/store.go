// Package store contains the fulfillment store aggregate and the transient
// ranking candidate produced by the store ranking service.
package store

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrStoreIsNotConstructed is returned when a Store instance was not created
// through the NewStore factory method.
var ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")

// Store represents a fulfillment location capable of accepting or rejecting
// orders and holding inventory. The routing subsystem only reads stores;
// store lifecycle management lives elsewhere.
type Store struct {
	id       kernel.UUID
	name     string
	location kernel.GeoPoint

	isConstructed bool
}

// NewStore creates a Store with validation.
func NewStore(id kernel.UUID, name string, location kernel.GeoPoint) (*Store, error) {
	s := &Store{
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setLocation(location),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Store instance was properly constructed through NewStore.
func (s *Store) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStoreIsNotConstructed
	}

	return nil
}

// ID returns the store's unique identifier.
func (s *Store) ID() kernel.UUID {
	return s.id
}

// Name returns the store's display name.
func (s *Store) Name() string {
	return s.name
}

// Location returns the store's geographic position.
func (s *Store) Location() kernel.GeoPoint {
	return s.location
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Store) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("store name")
	}
	s.name = name
	return nil
}

func (s *Store) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}

// Candidate is a transient ranking result: a store paired with its haversine
// distance from the customer's address. Candidates are never persisted.
type Candidate struct {
	StoreID    kernel.UUID
	DistanceKm float64
}
