package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/parkly/backend/internal/domain/engagement"
	"github.com/parkly/backend/internal/domain/identity"
	"github.com/parkly/backend/internal/domain/parking"
)

// MockBookingRepository is a mock implementation of parking.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Reserve(ctx context.Context, booking *parking.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *parking.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*parking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter parking.BookingFilter) ([]*parking.Booking, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*parking.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) FindAll(ctx context.Context, filter parking.BookingFilter) ([]*parking.Booking, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*parking.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) Count(ctx context.Context, filter parking.BookingFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) FindLapsedReserved(ctx context.Context, now time.Time) ([]*parking.Booking, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parking.Booking), args.Error(1)
}

func (m *MockBookingRepository) HasOverlap(ctx context.Context, slotID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, slotID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockParkingSlotRepository is a mock implementation of parking.ParkingSlotRepository
type MockParkingSlotRepository struct {
	mock.Mock
}

func (m *MockParkingSlotRepository) Create(ctx context.Context, slot *parking.ParkingSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockParkingSlotRepository) Update(ctx context.Context, slot *parking.ParkingSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockParkingSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockParkingSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*parking.ParkingSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parking.ParkingSlot), args.Error(1)
}

func (m *MockParkingSlotRepository) FindBySubAreaID(ctx context.Context, subAreaID uuid.UUID) ([]*parking.ParkingSlot, error) {
	args := m.Called(ctx, subAreaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parking.ParkingSlot), args.Error(1)
}

func (m *MockParkingSlotRepository) FindAll(ctx context.Context, filter parking.SlotFilter) ([]*parking.ParkingSlot, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*parking.ParkingSlot), args.Get(1).(int64), args.Error(2)
}

func (m *MockParkingSlotRepository) ExistsBySubAreaAndNumber(ctx context.Context, subAreaID uuid.UUID, slotNumber string) (bool, error) {
	args := m.Called(ctx, subAreaID, slotNumber)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockFeedbackRepository is a mock implementation of engagement.FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *engagement.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) FindAll(ctx context.Context, since *time.Time, page, pageSize int) ([]*engagement.Feedback, int64, error) {
	args := m.Called(ctx, since, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*engagement.Feedback), args.Get(1).(int64), args.Error(2)
}

func (m *MockFeedbackRepository) FindPublic(ctx context.Context, limit int) ([]*engagement.Feedback, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*engagement.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) Stats(ctx context.Context, since *time.Time) (*engagement.FeedbackStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.FeedbackStats), args.Error(1)
}

// MockContactRepository is a mock implementation of engagement.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *engagement.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindAll(ctx context.Context, page, pageSize int) ([]*engagement.Contact, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*engagement.Contact), args.Get(1).(int64), args.Error(2)
}
