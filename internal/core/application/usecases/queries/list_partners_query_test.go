package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListPartnersQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		query := queries.NewListPartnersQuery(false)

		require.NoError(t, query.Validate())
		assert.False(t, query.AvailableOnly())
	})

	t.Run("should carry the available-only flag", func(t *testing.T) {
		query := queries.NewListPartnersQuery(true)

		assert.True(t, query.AvailableOnly())
	})

	t.Run("should fail validation on zero-value query", func(t *testing.T) {
		var query queries.ListPartnersQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrListPartnersQueryIsNotConstructed)
	})
}
