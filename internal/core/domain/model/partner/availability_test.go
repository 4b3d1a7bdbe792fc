package partner_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailability_Validate(t *testing.T) {
	t.Run("should validate roster states", func(t *testing.T) {
		for _, availability := range []partner.Availability{
			partner.Available, partner.Busy, partner.Inactive,
		} {
			require.NoError(t, availability.Validate())
		}
	})

	t.Run("should reject invalid availability values", func(t *testing.T) {
		for _, availability := range []partner.Availability{
			partner.AvailabilityUnknown,
			partner.Availability(-1),
			partner.Availability(4),
		} {
			t.Run(fmt.Sprintf("should reject value %d", int(availability)), func(t *testing.T) {
				err := availability.Validate()

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})
}

func TestAvailability_String(t *testing.T) {
	testCases := []struct {
		availability partner.Availability
		expected     string
	}{
		{partner.Available, "Available"},
		{partner.Busy, "Busy"},
		{partner.Inactive, "Inactive"},
		{partner.AvailabilityUnknown, "Unknown"},
		{partner.Availability(99), "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("should return %s for %d", tc.expected, int(tc.availability)), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.availability.String())
		})
	}
}

func TestAvailabilityFromString(t *testing.T) {
	t.Run("should round-trip roster states", func(t *testing.T) {
		for _, availability := range []partner.Availability{
			partner.Available, partner.Busy, partner.Inactive,
		} {
			parsed, err := partner.AvailabilityFromString(availability.String())

			require.NoError(t, err)
			assert.Equal(t, availability, parsed)
		}
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		for _, s := range []string{"", "Unknown", "available", "BUSY"} {
			parsed, err := partner.AvailabilityFromString(s)

			require.Error(t, err)
			assert.Equal(t, partner.AvailabilityUnknown, parsed)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}
