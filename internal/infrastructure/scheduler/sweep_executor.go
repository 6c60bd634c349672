package scheduler

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/parkly/backend/internal/domain/parking"
)

// ExpirySweepExecutor transitions lapsed reserved bookings to expired and
// releases their slots. The sweep is the only writer of the expired status.
type ExpirySweepExecutor struct {
	bookings parking.BookingRepository
	slots    parking.ParkingSlotRepository
	logger   *zap.Logger
}

// NewExpirySweepExecutor creates a new expiry sweep executor
func NewExpirySweepExecutor(
	bookings parking.BookingRepository,
	slots parking.ParkingSlotRepository,
	logger *zap.Logger,
) *ExpirySweepExecutor {
	return &ExpirySweepExecutor{
		bookings: bookings,
		slots:    slots,
		logger:   logger,
	}
}

var _ JobExecutor = (*ExpirySweepExecutor)(nil)

// Execute runs one sweep pass against the job's cutoff
func (e *ExpirySweepExecutor) Execute(ctx context.Context, job *Job) error {
	lapsed, err := e.bookings.FindLapsedReserved(ctx, job.Cutoff)
	if err != nil {
		return fmt.Errorf("find lapsed reservations: %w", err)
	}
	if len(lapsed) == 0 {
		return nil
	}

	var failed int
	for _, booking := range lapsed {
		if err := e.expireBooking(ctx, booking, job); err != nil {
			failed++
			e.logger.Error("Failed to expire booking",
				zap.String("booking_id", booking.ID.String()),
				zap.Error(err),
			)
		}
	}

	e.logger.Info("Expiry sweep completed",
		zap.String("job_id", job.ID.String()),
		zap.Int("lapsed", len(lapsed)),
		zap.Int("failed", failed),
	)

	if failed > 0 {
		return fmt.Errorf("expiry sweep: %d of %d bookings failed", failed, len(lapsed))
	}
	return nil
}

func (e *ExpirySweepExecutor) expireBooking(ctx context.Context, booking *parking.Booking, job *Job) error {
	if err := booking.Expire(job.Cutoff); err != nil {
		return err
	}
	if err := e.bookings.Update(ctx, booking); err != nil {
		return err
	}

	slot, err := e.slots.FindByID(ctx, booking.ParkingSlotID)
	if err != nil {
		return fmt.Errorf("load slot %s: %w", booking.ParkingSlotID, err)
	}
	slot.Release()
	if err := e.slots.Update(ctx, slot); err != nil {
		return fmt.Errorf("release slot %s: %w", booking.ParkingSlotID, err)
	}
	return nil
}
