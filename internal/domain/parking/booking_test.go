package parking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWindow() (time.Time, time.Time) {
	start := time.Now().Add(3 * time.Hour)
	return start, start.Add(2 * time.Hour)
}

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	start, end := validWindow()
	b, err := NewBooking(uuid.New(), uuid.New(), VehicleTypeFourWheeler, "KA01AB1234", start, end, DefaultBookingConfig())
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	cfg := DefaultBookingConfig()

	t.Run("reserves with valid window", func(t *testing.T) {
		start, end := validWindow()
		before := time.Now()
		b, err := NewBooking(uuid.New(), uuid.New(), VehicleTypeTwoWheeler, "ka05cd9876", start, end, cfg)
		after := time.Now()

		require.NoError(t, err)
		assert.Equal(t, BookingStatusReserved, b.Status)
		assert.Equal(t, "KA05CD9876", b.VehicleNumber)
		assert.False(t, b.Paid)
		assert.Nil(t, b.Amount)

		// Expiry is fixed at creation: reservation time plus grace period
		assert.False(t, b.ExpiryTime.Before(before.Add(cfg.GracePeriod)))
		assert.False(t, b.ExpiryTime.After(after.Add(cfg.GracePeriod)))
		assert.Equal(t, b.ReservationTime.Add(cfg.GracePeriod), b.ExpiryTime)

		events := b.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*BookingReservedEvent)
		assert.True(t, ok)
	})

	t.Run("rejects start time inside the lead window", func(t *testing.T) {
		start := time.Now().Add(90 * time.Minute)
		_, err := NewBooking(uuid.New(), uuid.New(), VehicleTypeFourWheeler, "KA01AB1234", start, start.Add(time.Hour), cfg)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 2 hours")
	})

	t.Run("rejects end equal to start", func(t *testing.T) {
		start, _ := validWindow()
		_, err := NewBooking(uuid.New(), uuid.New(), VehicleTypeFourWheeler, "KA01AB1234", start, start, cfg)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "after start time")
	})

	t.Run("rejects end before start", func(t *testing.T) {
		start, _ := validWindow()
		_, err := NewBooking(uuid.New(), uuid.New(), VehicleTypeFourWheeler, "KA01AB1234", start, start.Add(-time.Hour), cfg)

		assert.Error(t, err)
	})

	t.Run("rejects unknown vehicle type", func(t *testing.T) {
		start, end := validWindow()
		_, err := NewBooking(uuid.New(), uuid.New(), VehicleType("3-wheeler"), "KA01AB1234", start, end, cfg)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "2-wheeler or 4-wheeler")
	})

	t.Run("rejects empty vehicle number", func(t *testing.T) {
		start, end := validWindow()
		_, err := NewBooking(uuid.New(), uuid.New(), VehicleTypeFourWheeler, "   ", start, end, cfg)

		assert.Error(t, err)
	})
}

func TestBooking_Start(t *testing.T) {
	t.Run("starts within grace period", func(t *testing.T) {
		b := newTestBooking(t)
		b.ClearDomainEvents()
		now := time.Now()

		require.NoError(t, b.Start(now))

		assert.Equal(t, BookingStatusActive, b.Status)
		assert.Equal(t, now, b.StartTime)

		events := b.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*BookingStartedEvent)
		assert.True(t, ok)
	})

	t.Run("fails after grace deadline without mutating", func(t *testing.T) {
		b := newTestBooking(t)
		late := b.ExpiryTime.Add(time.Second)
		origStart := b.StartTime

		err := b.Start(late)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "grace period")
		assert.Equal(t, BookingStatusReserved, b.Status)
		assert.Equal(t, origStart, b.StartTime)
	})

	t.Run("fails from non-reserved states", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Start(time.Now()))

		assert.Error(t, b.Start(time.Now()))
	})
}

func TestBooking_End(t *testing.T) {
	cfg := DefaultBookingConfig()

	startActive := func(t *testing.T) *Booking {
		b := newTestBooking(t)
		require.NoError(t, b.Start(time.Now()))
		return b
	}

	t.Run("bills exactly one hour for a full hour", func(t *testing.T) {
		b := startActive(t)

		require.NoError(t, b.End(b.StartTime.Add(time.Hour), cfg))

		require.NotNil(t, b.Amount)
		assert.True(t, b.Amount.Equal(decimal.NewFromInt(20)), "got %s", b.Amount)
		assert.Equal(t, BookingStatusCompleted, b.Status)
	})

	t.Run("rounds a started hour up", func(t *testing.T) {
		b := startActive(t)

		require.NoError(t, b.End(b.StartTime.Add(time.Hour+time.Second), cfg))

		require.NotNil(t, b.Amount)
		assert.True(t, b.Amount.Equal(decimal.NewFromInt(40)), "got %s", b.Amount)
	})

	t.Run("bills two hours for exactly two hours", func(t *testing.T) {
		b := startActive(t)

		require.NoError(t, b.End(b.StartTime.Add(2*time.Hour), cfg))

		require.NotNil(t, b.Amount)
		assert.True(t, b.Amount.Equal(decimal.NewFromInt(40)), "got %s", b.Amount)
	})

	t.Run("bills at least one hour", func(t *testing.T) {
		b := startActive(t)

		require.NoError(t, b.End(b.StartTime.Add(5*time.Minute), cfg))

		require.NotNil(t, b.Amount)
		assert.True(t, b.Amount.Equal(decimal.NewFromInt(20)), "got %s", b.Amount)
	})

	t.Run("fails unless active", func(t *testing.T) {
		b := newTestBooking(t)

		assert.Error(t, b.End(time.Now(), cfg))
		assert.Nil(t, b.Amount)
	})
}

func TestBooking_Expire(t *testing.T) {
	t.Run("expires a reserved booking", func(t *testing.T) {
		b := newTestBooking(t)

		require.NoError(t, b.Expire(time.Now()))

		assert.Equal(t, BookingStatusExpired, b.Status)
	})

	t.Run("fails from active", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Start(time.Now()))

		assert.Error(t, b.Expire(time.Now()))
	})

	t.Run("IsLapsed follows the fixed deadline", func(t *testing.T) {
		b := newTestBooking(t)

		assert.False(t, b.IsLapsed(b.ExpiryTime))
		assert.True(t, b.IsLapsed(b.ExpiryTime.Add(time.Second)))
	})
}

func TestBooking_ConfirmPayment(t *testing.T) {
	completed := func(t *testing.T) *Booking {
		b := newTestBooking(t)
		require.NoError(t, b.Start(time.Now()))
		require.NoError(t, b.End(b.StartTime.Add(time.Hour), DefaultBookingConfig()))
		return b
	}

	t.Run("marks completed booking paid", func(t *testing.T) {
		b := completed(t)

		require.NoError(t, b.ConfirmPayment())

		assert.True(t, b.Paid)
	})

	t.Run("is idempotent", func(t *testing.T) {
		b := completed(t)
		require.NoError(t, b.ConfirmPayment())
		version := b.GetVersion()

		require.NoError(t, b.ConfirmPayment())

		assert.True(t, b.Paid)
		assert.Equal(t, version, b.GetVersion())
	})

	t.Run("fails before completion", func(t *testing.T) {
		b := newTestBooking(t)

		assert.Error(t, b.ConfirmPayment())
		assert.False(t, b.Paid)
	})
}

func TestBooking_CanCancel(t *testing.T) {
	t.Run("reserved and active can cancel", func(t *testing.T) {
		b := newTestBooking(t)
		assert.True(t, b.CanCancel())

		require.NoError(t, b.Start(time.Now()))
		assert.True(t, b.CanCancel())
	})

	t.Run("terminal states cannot", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Start(time.Now()))
		require.NoError(t, b.End(b.StartTime.Add(time.Hour), DefaultBookingConfig()))

		assert.False(t, b.CanCancel())

		e := newTestBooking(t)
		require.NoError(t, e.Expire(time.Now()))
		assert.False(t, e.CanCancel())
	})
}

func TestParkingSlot(t *testing.T) {
	t.Run("new slot is available", func(t *testing.T) {
		slot, err := NewParkingSlot(uuid.New(), "A-12", SlotTypeCovered)

		require.NoError(t, err)
		assert.True(t, slot.IsAvailable)
	})

	t.Run("occupy and release", func(t *testing.T) {
		slot, _ := NewParkingSlot(uuid.New(), "A-12", SlotTypeOpen)

		slot.MarkOccupied()
		assert.False(t, slot.IsAvailable)

		slot.Release()
		assert.True(t, slot.IsAvailable)
	})

	t.Run("rejects unknown slot type", func(t *testing.T) {
		_, err := NewParkingSlot(uuid.New(), "A-12", SlotType("rooftop"))

		assert.Error(t, err)
	})

	t.Run("rejects empty slot number", func(t *testing.T) {
		_, err := NewParkingSlot(uuid.New(), " ", SlotTypeOpen)

		assert.Error(t, err)
	})
}

func TestArea(t *testing.T) {
	t.Run("creates and renames", func(t *testing.T) {
		area, err := NewArea("North Lot", "main entrance")
		require.NoError(t, err)

		require.NoError(t, area.Rename("North Lot B"))
		assert.Equal(t, "North Lot B", area.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewArea("  ", "")
		assert.Error(t, err)
	})

	t.Run("sub-area requires parent", func(t *testing.T) {
		_, err := NewSubArea(uuid.Nil, "Level 1", "")
		assert.Error(t, err)

		sub, err := NewSubArea(uuid.New(), "Level 1", "")
		require.NoError(t, err)
		assert.Equal(t, "Level 1", sub.Name)
	})
}
