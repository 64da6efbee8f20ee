package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"hotride-driver-api/models"
	"hotride-driver-api/stores"
)

// pendingBookingLimit caps how many booking requests a driver sees at once.
const pendingBookingLimit = 10

// DashboardStats is today's summary for a driver.
type DashboardStats struct {
	TodayEarnings  float64 `json:"today_earnings"`
	TripsCompleted int64   `json:"trips_completed"`
	DriverID       string  `json:"driver_id"`
	DriverName     string  `json:"driver_name"`
	IsOnline       bool    `json:"is_online"`
}

// AcceptedBooking is returned after a successful booking claim.
type AcceptedBooking struct {
	BookingID      string  `json:"booking_id"`
	PickupLocation string  `json:"pickup_location"`
	PassengerName  string  `json:"passenger_name"`
	PassengerPhone string  `json:"passenger_phone,omitempty"`
	Fare           float64 `json:"fare"`
}

// DashboardService serves the driver dashboard: stats, online toggle and the
// booking request/claim flow.
type DashboardService struct {
	drivers  stores.DriverStore
	bookings stores.BookingStore
	log      *zap.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(drivers stores.DriverStore, bookings stores.BookingStore, log *zap.Logger) *DashboardService {
	return &DashboardService{drivers: drivers, bookings: bookings, log: log}
}

// CurrentDriver resolves the driver referenced by a verified token. A
// malformed id or a driver that no longer exists both yield
// ErrDriverNotFound; the controller maps it to unauthorized.
func (s *DashboardService) CurrentDriver(ctx context.Context, driverID string) (*models.Driver, error) {
	id, err := primitive.ObjectIDFromHex(driverID)
	if err != nil {
		return nil, ErrDriverNotFound
	}
	driver, err := s.drivers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}
	return driver, nil
}

// SetOnline updates the driver's online/offline flag.
func (s *DashboardService) SetOnline(ctx context.Context, driver *models.Driver, online bool) error {
	return s.drivers.SetOnline(ctx, driver.ID, online)
}

// BookingRequests lists claimable bookings for an online driver. An offline
// driver gets an empty list, not an error; that is the offline signal.
func (s *DashboardService) BookingRequests(ctx context.Context, driver *models.Driver) ([]models.Booking, error) {
	if !driver.IsOnline {
		return []models.Booking{}, nil
	}
	return s.bookings.ListPending(ctx, time.Now().UTC(), pendingBookingLimit)
}

// AcceptBooking claims a booking for the driver. The pre-claim read maps each
// violation to a distinct error (not found / taken / expired); the guarded
// conditional update is what actually prevents double assignment. The driver
// update that follows is a separate write: a crash between the two leaves the
// booking accepted while the driver is not yet marked busy.
func (s *DashboardService) AcceptBooking(ctx context.Context, driver *models.Driver, bookingID string) (*AcceptedBooking, error) {
	id, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	if booking.Status != models.BookingPending {
		return nil, ErrBookingTaken
	}
	if booking.AssignedDriverID != nil {
		return nil, ErrBookingTaken
	}
	if !booking.ExpiresAt.After(now) {
		return nil, ErrBookingExpired
	}

	claimed, err := s.bookings.Claim(ctx, id, driver.ID.Hex(), driver.FullName(), now)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Lost the race to another driver between the read and the update.
		return nil, ErrBookingTaken
	}

	if err := s.drivers.SetBusy(ctx, driver.ID, bookingID); err != nil {
		s.log.Error("booking claimed but driver busy-state update failed",
			zap.String("driver_id", driver.ID.Hex()),
			zap.String("booking_id", bookingID),
			zap.Error(err),
		)
		return nil, err
	}

	return &AcceptedBooking{
		BookingID:      bookingID,
		PickupLocation: booking.PickupLocation,
		PassengerName:  booking.PassengerName,
		PassengerPhone: booking.PassengerPhone,
		Fare:           booking.Fare,
	}, nil
}

// Stats aggregates today's completed trips for the driver. The day boundary
// is UTC and the numbers are recomputed on every request.
func (s *DashboardService) Stats(ctx context.Context, driver *models.Driver) (*DashboardStats, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	day, err := s.bookings.TodayStats(ctx, driver.ID.Hex(), dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TodayEarnings:  day.TotalFare,
		TripsCompleted: day.TripsCompleted,
		DriverID:       driver.ID.Hex(),
		DriverName:     driver.FullName(),
		IsOnline:       driver.IsOnline,
	}, nil
}
