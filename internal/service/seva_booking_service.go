package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/templedesk/temple-booking/internal/models"
	"github.com/templedesk/temple-booking/internal/repository"
	"github.com/templedesk/temple-booking/internal/timerange"
	"github.com/templedesk/temple-booking/monitoring"
	"gorm.io/gorm"
)

// CreateSevaBookingInput carries a new seva booking request.
type CreateSevaBookingInput struct {
	SevaID   uint
	SevaDate time.Time
	Name     string
	MobileNo string
	GotraID  *uint
	Address  string
	Remarks  string
}

// SevaBookingUpdate carries a partial update; nil fields are left unchanged.
type SevaBookingUpdate struct {
	SevaID   *uint
	SevaDate *time.Time
	Name     *string
	MobileNo *string
	GotraID  *uint
	Address  *string
	Remarks  *string
}

// SevaBookingPage is a list slice plus the unpaginated total.
type SevaBookingPage struct {
	TotalCount int64
	Bookings   []models.SevaBooking
}

// SevaTotals aggregates one seva's bookings over an optional date window.
type SevaTotals struct {
	SevaID      uint
	SevaName    string
	SevaAmount  *float64
	TotalCount  int
	TotalAmount float64
	Bookings    []models.SevaBooking
}

// SevaCount is a per-seva slice of a date group.
type SevaCount struct {
	SevaName string
	Count    int
}

// DateTotals aggregates one seva date's bookings across all sevas.
type DateTotals struct {
	SevaDate      time.Time
	TotalBookings int
	TotalAmount   float64
	SevaList      []SevaCount
	Bookings      []models.SevaBooking
}

// MultiSevaSummary aggregates a chosen set of sevas: overall totals plus
// per-seva and per-date breakdowns.
type MultiSevaSummary struct {
	SevaIDs       []uint
	TotalBookings int
	TotalAmount   float64
	BySeva        []SevaTotals
	ByDate        []DateTotals
}

type SevaBookingService interface {
	CreateSevaBooking(ctx context.Context, input CreateSevaBookingInput) (*models.SevaBooking, error)
	GetSevaBooking(ctx context.Context, id uint) (*models.SevaBooking, error)
	ListSevaBookings(ctx context.Context, filter repository.SevaBookingFilter) (*SevaBookingPage, error)
	UpdateSevaBooking(ctx context.Context, id uint, update SevaBookingUpdate) (*models.SevaBooking, error)
	UpdateSevaBookingStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.SevaBooking, error)
	DeleteSevaBooking(ctx context.Context, id uint) error
	AggregateBySeva(ctx context.Context, sevaID uint, dateFrom, dateTo *time.Time) (*SevaTotals, error)
	AggregateByDate(ctx context.Context, dateFrom, dateTo *time.Time) ([]DateTotals, error)
	AggregateMultiple(ctx context.Context, sevaIDs []uint, dateFrom, dateTo *time.Time) (*MultiSevaSummary, error)
}

type sevaBookingService struct {
	bookingRepo repository.SevaBookingRepository
	sevaRepo    repository.SevaRepository
	gotraRepo   repository.GotraRepository
	clock       Clock
}

func NewSevaBookingService(bookingRepo repository.SevaBookingRepository, sevaRepo repository.SevaRepository, gotraRepo repository.GotraRepository, clock Clock) SevaBookingService {
	return &sevaBookingService{
		bookingRepo: bookingRepo,
		sevaRepo:    sevaRepo,
		gotraRepo:   gotraRepo,
		clock:       clock,
	}
}

func (s *sevaBookingService) validateInput(input CreateSevaBookingInput) error {
	if !validName(input.Name) {
		return invalidField("name", "must be non-empty and at most %d characters", maxNameLength)
	}
	if !phonePattern.MatchString(input.MobileNo) {
		return invalidField("mobile_no", "must be 10 to 15 digits")
	}
	today := timerange.Truncate(s.clock.Now())
	if timerange.Truncate(input.SevaDate).Before(today) {
		return invalidField("seva_date", "must be today or a future date")
	}
	return nil
}

func (s *sevaBookingService) checkReferences(ctx context.Context, sevaID uint, gotraID *uint) error {
	if _, err := s.sevaRepo.FindByID(ctx, sevaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSevaNotFound
		}
		return err
	}
	if gotraID != nil {
		if _, err := s.gotraRepo.FindByID(ctx, *gotraID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGotraNotFound
			}
			return err
		}
	}
	return nil
}

// CreateSevaBooking records a seva receipt. Sevas are not time-exclusive:
// any number of bookings may share a seva and date, so there is no
// conflict check here.
func (s *sevaBookingService) CreateSevaBooking(ctx context.Context, input CreateSevaBookingInput) (*models.SevaBooking, error) {
	if err := s.validateInput(input); err != nil {
		monitoring.RecordSevaBookingOperation("create", "validation_error")
		return nil, err
	}
	if err := s.checkReferences(ctx, input.SevaID, input.GotraID); err != nil {
		return nil, err
	}

	booking := &models.SevaBooking{
		ReceiptDate: timerange.Truncate(s.clock.Now()),
		SevaID:      input.SevaID,
		SevaDate:    timerange.Truncate(input.SevaDate),
		Name:        input.Name,
		MobileNo:    input.MobileNo,
		GotraID:     input.GotraID,
		Status:      models.StatusConfirmed,
		Address:     input.Address,
		Remarks:     input.Remarks,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	monitoring.RecordSevaBookingOperation("create", "ok")
	return s.GetSevaBooking(ctx, booking.ID)
}

func (s *sevaBookingService) GetSevaBooking(ctx context.Context, id uint) (*models.SevaBooking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSevaBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *sevaBookingService) ListSevaBookings(ctx context.Context, filter repository.SevaBookingFilter) (*SevaBookingPage, error) {
	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &SevaBookingPage{TotalCount: total, Bookings: bookings}, nil
}

func (s *sevaBookingService) UpdateSevaBooking(ctx context.Context, id uint, update SevaBookingUpdate) (*models.SevaBooking, error) {
	booking, err := s.GetSevaBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.SevaID != nil {
		booking.SevaID = *update.SevaID
	}
	if update.GotraID != nil {
		booking.GotraID = update.GotraID
	}
	if err := s.checkReferences(ctx, booking.SevaID, booking.GotraID); err != nil {
		return nil, err
	}
	if update.SevaDate != nil {
		today := timerange.Truncate(s.clock.Now())
		if timerange.Truncate(*update.SevaDate).Before(today) {
			return nil, invalidField("seva_date", "must be today or a future date")
		}
		booking.SevaDate = timerange.Truncate(*update.SevaDate)
	}
	if update.Name != nil {
		if !validName(*update.Name) {
			return nil, invalidField("name", "must be non-empty and at most %d characters", maxNameLength)
		}
		booking.Name = *update.Name
	}
	if update.MobileNo != nil {
		if !phonePattern.MatchString(*update.MobileNo) {
			return nil, invalidField("mobile_no", "must be 10 to 15 digits")
		}
		booking.MobileNo = *update.MobileNo
	}
	if update.Address != nil {
		booking.Address = *update.Address
	}
	if update.Remarks != nil {
		booking.Remarks = *update.Remarks
	}

	// Saving with the association fields loaded would re-save stale Seva
	// rows; clear them and reload after the write.
	booking.Seva, booking.Gotra = nil, nil
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, err
	}
	return s.GetSevaBooking(ctx, id)
}

func (s *sevaBookingService) UpdateSevaBookingStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.SevaBooking, error) {
	if !status.IsValid() {
		return nil, invalidField("status", "unknown status %q", string(status))
	}

	booking, err := s.GetSevaBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, &IllegalTransitionError{From: string(booking.Status), To: string(status)}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	booking.Status = status
	monitoring.RecordSevaBookingOperation("update_status", "ok")
	return booking, nil
}

func (s *sevaBookingService) DeleteSevaBooking(ctx context.Context, id uint) error {
	booking, err := s.GetSevaBooking(ctx, id)
	if err != nil {
		return err
	}
	if !booking.Status.CanDelete() {
		return ErrIllegalDeletion
	}
	return s.bookingRepo.Delete(ctx, id)
}

func (s *sevaBookingService) AggregateBySeva(ctx context.Context, sevaID uint, dateFrom, dateTo *time.Time) (*SevaTotals, error) {
	seva, err := s.sevaRepo.FindByID(ctx, sevaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSevaNotFound
		}
		return nil, err
	}

	bookings, err := s.bookingRepo.FindAll(ctx, repository.SevaBookingFilter{
		SevaIDs:  []uint{sevaID},
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		return nil, err
	}

	return &SevaTotals{
		SevaID:      seva.ID,
		SevaName:    seva.Name,
		SevaAmount:  seva.Amount,
		TotalCount:  len(bookings),
		TotalAmount: sumAmounts(bookings),
		Bookings:    bookings,
	}, nil
}

// AggregateByDate groups bookings by seva date, each group carrying a
// per-seva name/count breakdown. Pure reduction over already-valid rows.
func (s *sevaBookingService) AggregateByDate(ctx context.Context, dateFrom, dateTo *time.Time) ([]DateTotals, error) {
	bookings, err := s.bookingRepo.FindAll(ctx, repository.SevaBookingFilter{
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		return nil, err
	}
	return groupByDate(bookings), nil
}

func (s *sevaBookingService) AggregateMultiple(ctx context.Context, sevaIDs []uint, dateFrom, dateTo *time.Time) (*MultiSevaSummary, error) {
	if len(sevaIDs) == 0 {
		return nil, invalidField("seva_ids", "at least one seva id is required")
	}

	bookings, err := s.bookingRepo.FindAll(ctx, repository.SevaBookingFilter{
		SevaIDs:  sevaIDs,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		return nil, err
	}

	bySeva := make(map[uint][]models.SevaBooking)
	order := make([]uint, 0, len(sevaIDs))
	for _, b := range bookings {
		if _, seen := bySeva[b.SevaID]; !seen {
			order = append(order, b.SevaID)
		}
		bySeva[b.SevaID] = append(bySeva[b.SevaID], b)
	}

	summary := &MultiSevaSummary{
		SevaIDs:       sevaIDs,
		TotalBookings: len(bookings),
		TotalAmount:   sumAmounts(bookings),
		ByDate:        groupByDate(bookings),
	}
	for _, sevaID := range order {
		group := bySeva[sevaID]
		totals := SevaTotals{
			SevaID:      sevaID,
			TotalCount:  len(group),
			TotalAmount: sumAmounts(group),
		}
		if group[0].Seva != nil {
			totals.SevaName = group[0].Seva.Name
			totals.SevaAmount = group[0].Seva.Amount
		}
		summary.BySeva = append(summary.BySeva, totals)
	}
	return summary, nil
}

func groupByDate(bookings []models.SevaBooking) []DateTotals {
	byDate := make(map[time.Time][]models.SevaBooking)
	order := make([]time.Time, 0)
	for _, b := range bookings {
		d := timerange.Truncate(b.SevaDate)
		if _, seen := byDate[d]; !seen {
			order = append(order, d)
		}
		byDate[d] = append(byDate[d], b)
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	groups := make([]DateTotals, 0, len(order))
	for _, d := range order {
		group := byDate[d]

		sevaCounts := make(map[string]int)
		sevaOrder := make([]string, 0)
		for _, b := range group {
			name := ""
			if b.Seva != nil {
				name = b.Seva.Name
			}
			if _, seen := sevaCounts[name]; !seen {
				sevaOrder = append(sevaOrder, name)
			}
			sevaCounts[name]++
		}
		sevaList := make([]SevaCount, 0, len(sevaOrder))
		for _, name := range sevaOrder {
			sevaList = append(sevaList, SevaCount{SevaName: name, Count: sevaCounts[name]})
		}

		groups = append(groups, DateTotals{
			SevaDate:      d,
			TotalBookings: len(group),
			TotalAmount:   sumAmounts(group),
			SevaList:      sevaList,
			Bookings:      group,
		})
	}
	return groups
}
