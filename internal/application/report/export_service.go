package report

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkly/backend/internal/domain/engagement"
	"github.com/parkly/backend/internal/domain/identity"
	"github.com/parkly/backend/internal/domain/parking"
	"github.com/parkly/backend/internal/domain/shared"
	csvexport "github.com/parkly/backend/internal/infrastructure/export"
)

// ExportEntity names a dataset available for CSV export
type ExportEntity string

const (
	ExportEntityBookings ExportEntity = "bookings"
	ExportEntityUsers    ExportEntity = "users"
	ExportEntityFeedback ExportEntity = "feedback"
	ExportEntityContacts ExportEntity = "contacts"
)

// IsValid reports whether the entity is exportable
func (e ExportEntity) IsValid() bool {
	switch e {
	case ExportEntityBookings, ExportEntityUsers, ExportEntityFeedback, ExportEntityContacts:
		return true
	}
	return false
}

// exportPageSize is how many rows each repository fetch pulls
const exportPageSize = 500

// ExportService streams staff CSV exports. Foreign keys are rendered
// through their display field, so a booking row carries the username
// and slot number instead of raw IDs.
type ExportService struct {
	bookingRepo  parking.BookingRepository
	slotRepo     parking.ParkingSlotRepository
	userRepo     identity.UserRepository
	feedbackRepo engagement.FeedbackRepository
	contactRepo  engagement.ContactRepository
	logger       *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(
	bookingRepo parking.BookingRepository,
	slotRepo parking.ParkingSlotRepository,
	userRepo identity.UserRepository,
	feedbackRepo engagement.FeedbackRepository,
	contactRepo engagement.ContactRepository,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
		contactRepo:  contactRepo,
		logger:       logger,
	}
}

// Export writes the named dataset as CSV to out and returns the number
// of data rows written
func (s *ExportService) Export(ctx context.Context, entity ExportEntity, out io.Writer) (int, error) {
	if !entity.IsValid() {
		return 0, shared.NewDomainError("INVALID_EXPORT_ENTITY", "Unknown export dataset")
	}

	writer := csvexport.NewCSVWriter(out)

	var err error
	switch entity {
	case ExportEntityBookings:
		err = s.exportBookings(ctx, writer)
	case ExportEntityUsers:
		err = s.exportUsers(ctx, writer)
	case ExportEntityFeedback:
		err = s.exportFeedback(ctx, writer)
	case ExportEntityContacts:
		err = s.exportContacts(ctx, writer)
	}
	if err != nil {
		s.logger.Error("Export failed",
			zap.String("entity", string(entity)),
			zap.Error(err))
		return writer.RowCount(), err
	}

	if err := writer.Flush(); err != nil {
		return writer.RowCount(), err
	}

	s.logger.Info("Export completed",
		zap.String("entity", string(entity)),
		zap.Int("rows", writer.RowCount()))

	return writer.RowCount(), nil
}

func (s *ExportService) exportBookings(ctx context.Context, w *csvexport.CSVWriter) error {
	if err := w.WriteHeader([]string{
		"Username", "Slot", "Vehicle Type", "Vehicle Number",
		"Start Time", "End Time", "Reserved At", "Amount", "Paid", "Status",
	}); err != nil {
		return err
	}

	usernames := make(map[uuid.UUID]string)
	slotNumbers := make(map[uuid.UUID]string)

	filter := parking.NewBookingFilter()
	filter.PageSize = exportPageSize
	for {
		bookings, total, err := s.bookingRepo.FindAll(ctx, filter)
		if err != nil {
			return err
		}

		for _, b := range bookings {
			row := []string{
				s.username(ctx, usernames, b.UserID),
				s.slotNumber(ctx, slotNumbers, b.ParkingSlotID),
				string(b.VehicleType),
				b.VehicleNumber,
				csvexport.FormatTime(b.StartTime),
				csvexport.FormatTime(b.EndTime),
				csvexport.FormatTime(b.ReservationTime),
				csvexport.FormatAmount(b.Amount),
				csvexport.FormatBool(b.Paid),
				string(b.Status),
			}
			if err := w.WriteRow(row); err != nil {
				return err
			}
		}

		if int64(filter.Page*filter.PageSize) >= total || len(bookings) == 0 {
			return nil
		}
		filter.Page++
	}
}

func (s *ExportService) exportUsers(ctx context.Context, w *csvexport.CSVWriter) error {
	if err := w.WriteHeader([]string{
		"Username", "Email", "Staff", "Status", "Last Login", "Registered At",
	}); err != nil {
		return err
	}

	filter := identity.UserFilter{Page: 1, PageSize: exportPageSize}
	for {
		users, total, err := s.userRepo.FindAll(ctx, filter)
		if err != nil {
			return err
		}

		for _, u := range users {
			row := []string{
				u.Username,
				u.Email,
				csvexport.FormatBool(u.IsStaff),
				string(u.Status),
				csvexport.FormatOptionalTime(u.LastLoginAt),
				csvexport.FormatTime(u.CreatedAt),
			}
			if err := w.WriteRow(row); err != nil {
				return err
			}
		}

		if int64(filter.Page*filter.PageSize) >= total || len(users) == 0 {
			return nil
		}
		filter.Page++
	}
}

func (s *ExportService) exportFeedback(ctx context.Context, w *csvexport.CSVWriter) error {
	if err := w.WriteHeader([]string{
		"Username", "Rating", "Comments", "Goal Achieved",
		"Reason", "Issue", "Suggestions", "Public", "Submitted On",
	}); err != nil {
		return err
	}

	usernames := make(map[uuid.UUID]string)

	page := 1
	for {
		entries, total, err := s.feedbackRepo.FindAll(ctx, nil, page, exportPageSize)
		if err != nil {
			return err
		}

		for _, f := range entries {
			submitter := ""
			if f.UserID != nil {
				submitter = s.username(ctx, usernames, *f.UserID)
			}
			row := []string{
				submitter,
				csvexport.FormatInt(f.Rating),
				f.Comments,
				string(f.GoalAchievement),
				f.Reason,
				f.Issue,
				f.Suggestions,
				csvexport.FormatBool(f.IsPublic),
				csvexport.FormatTime(f.SubmittedOn),
			}
			if err := w.WriteRow(row); err != nil {
				return err
			}
		}

		if int64(page*exportPageSize) >= total || len(entries) == 0 {
			return nil
		}
		page++
	}
}

func (s *ExportService) exportContacts(ctx context.Context, w *csvexport.CSVWriter) error {
	if err := w.WriteHeader([]string{"Name", "Email", "Message", "Received At"}); err != nil {
		return err
	}

	page := 1
	for {
		contacts, total, err := s.contactRepo.FindAll(ctx, page, exportPageSize)
		if err != nil {
			return err
		}

		for _, c := range contacts {
			row := []string{
				c.Name,
				c.Email,
				c.Message,
				csvexport.FormatTime(c.Timestamp),
			}
			if err := w.WriteRow(row); err != nil {
				return err
			}
		}

		if int64(page*exportPageSize) >= total || len(contacts) == 0 {
			return nil
		}
		page++
	}
}

// username resolves and caches a user ID to a username. A deleted
// account exports as a blank cell.
func (s *ExportService) username(ctx context.Context, cache map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := cache[id]; ok {
		return name
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		cache[id] = ""
		return ""
	}
	cache[id] = user.Username
	return user.Username
}

func (s *ExportService) slotNumber(ctx context.Context, cache map[uuid.UUID]string, id uuid.UUID) string {
	if number, ok := cache[id]; ok {
		return number
	}
	slot, err := s.slotRepo.FindByID(ctx, id)
	if err != nil {
		cache[id] = ""
		return ""
	}
	cache[id] = slot.SlotNumber
	return slot.SlotNumber
}
