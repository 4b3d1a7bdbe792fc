package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("should not be returned")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_caller_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		want := errors.New("Order must be created via NewOrder")

		err := g.Validate(want)

		require.Error(t, err)
		assert.Equal(t, want, err)
	})

	t.Run("zero_value_guard_falls_back_to_default", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_names_the_contract", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuard_AggregateUsage shows the pattern every aggregate in
// this codebase follows: the guard is set only inside the constructor, so a
// zero-value struct is caught before it can reach a handler or repository.
func TestConstructorGuard_AggregateUsage(t *testing.T) {
	var errShiftNotConstructed = errors.New("Shift must be created via newShift")

	type Shift struct {
		partnerName string
		capacity    int
		guard       guard.ConstructorGuard
	}

	newShift := func(partnerName string, capacity int) (Shift, error) {
		if partnerName == "" {
			return Shift{}, errors.New("partner name is required")
		}
		if capacity <= 0 {
			return Shift{}, errors.New("capacity must be positive")
		}
		return Shift{
			partnerName: partnerName,
			capacity:    capacity,
			guard:       guard.NewConstructorGuard(),
		}, nil
	}

	t.Run("constructed_aggregate_validates", func(t *testing.T) {
		shift, err := newShift("Ravi Kumar", 1)

		require.NoError(t, err)
		require.NoError(t, shift.guard.Validate(errShiftNotConstructed))
		assert.Equal(t, "Ravi Kumar", shift.partnerName)
		assert.Equal(t, 1, shift.capacity)
	})

	t.Run("zero_value_aggregate_is_rejected", func(t *testing.T) {
		var shift Shift

		err := shift.guard.Validate(errShiftNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errShiftNotConstructed, err)
	})

	t.Run("constructor_still_enforces_field_rules", func(t *testing.T) {
		_, err := newShift("", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "partner name is required")

		_, err = newShift("Meena Iyer", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "capacity must be positive")
	})
}

func TestConstructorGuard_CopySemantics(t *testing.T) {
	t.Run("copies_validate_independently", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		cp := g

		require.NoError(t, g.Validate(errors.New("original")))
		require.NoError(t, cp.Validate(errors.New("copy")))
	})
}

// Commands and queries are validated from many request goroutines at once,
// so Validate must be safe to call concurrently on a shared value.
func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	notConstructed := errors.New("not constructed")

	done := make(chan struct{})
	for range 50 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 500 {
				assert.NoError(t, g.Validate(notConstructed))
			}
		}()
	}
	for range 50 {
		<-done
	}
}

func BenchmarkConstructorGuardValidate(b *testing.B) {
	g := guard.NewConstructorGuard()
	notConstructed := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(notConstructed)
	}
}
