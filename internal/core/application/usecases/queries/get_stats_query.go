package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetStatsQueryIsNotConstructed = errors.New(
	"GetStatsQuery must be created via NewGetStatsQuery constructor",
)

// GetStatsQuery retrieves the headline counters rendered above the console
// views. The counters are computed over the unfiltered order set for the
// requested scope so they agree with the stats strip regardless of active
// filters. A non-nil partnerID scopes the counters to that partner's orders.
type GetStatsQuery struct { //nolint:recvcheck //using for validation
	partnerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStatsQuery creates a query for the headline counters.
// Pass nil for the full vendor scope.
func NewGetStatsQuery(partnerID *kernel.UUID) (GetStatsQuery, error) {
	statsQuery := GetStatsQuery{guard: guard.NewConstructorGuard()}

	if err := statsQuery.setPartnerID(partnerID); err != nil {
		return GetStatsQuery{}, err
	}

	return statsQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStatsQueryIsNotConstructed if validation fails.
func (q GetStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatsQueryIsNotConstructed)
}

// PartnerID returns the partner scope, or nil for the full vendor scope.
func (q GetStatsQuery) PartnerID() *kernel.UUID {
	return q.partnerID
}

func (q *GetStatsQuery) setPartnerID(partnerID *kernel.UUID) error {
	if partnerID == nil {
		return nil
	}
	if err := partnerID.Validate(); err != nil {
		return err
	}

	q.partnerID = partnerID
	return nil
}
