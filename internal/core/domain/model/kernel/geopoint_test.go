package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("creates point with valid coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(10.762622, 106.660172)

		require.NoError(t, err)
		assert.InDelta(t, 10.762622, point.Latitude(), 1e-9)
		assert.InDelta(t, 106.660172, point.Longitude(), 1e-9)
		require.NoError(t, point.Validate())
	})

	t.Run("accepts boundary coordinates", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lon float64
		}{
			{"south pole", -90, 0},
			{"north pole", 90, 0},
			{"antimeridian west", 0, -180},
			{"antimeridian east", 0, 180},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
				require.NoError(t, err)
			})
		}
	})

	t.Run("rejects out of range coordinates", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lon float64
		}{
			{"latitude too small", -90.1, 0},
			{"latitude too large", 90.1, 0},
			{"longitude too small", 0, -180.1},
			{"longitude too large", 0, 180.1},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			})
		}
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var point kernel.GeoPoint

		err := point.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance between identical points is zero", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(10.762622, 106.660172)
		require.NoError(t, err)

		distance, err := point.DistanceKm(point)

		require.NoError(t, err)
		assert.InDelta(t, 0, distance, 1e-9)
	})

	t.Run("distance across central Ho Chi Minh City", func(t *testing.T) {
		from, err := kernel.NewGeoPoint(10.762622, 106.660172)
		require.NoError(t, err)
		to, err := kernel.NewGeoPoint(10.776889, 106.700806)
		require.NoError(t, err)

		distance, err := from.DistanceKm(to)

		require.NoError(t, err)
		assert.InDelta(t, 4.7136890264, distance, 1e-9)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		from, err := kernel.NewGeoPoint(10.762622, 106.660172)
		require.NoError(t, err)
		to, err := kernel.NewGeoPoint(21.028511, 105.804817)
		require.NoError(t, err)

		forward, err := from.DistanceKm(to)
		require.NoError(t, err)
		backward, err := to.DistanceKm(from)
		require.NoError(t, err)

		assert.InDelta(t, forward, backward, 1e-9)
	})

	t.Run("zero value point fails", func(t *testing.T) {
		var zero kernel.GeoPoint
		point, err := kernel.NewGeoPoint(0, 0)
		require.NoError(t, err)

		_, err = point.DistanceKm(zero)
		require.Error(t, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal coordinates are equal", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(10.5, 106.5)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(10.5, 106.5)
		require.NoError(t, err)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different coordinates are not equal", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(10.5, 106.5)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(10.5, 106.6)
		require.NoError(t, err)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.False(t, equal)
	})
}
