package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"hotride-driver-api/models"
)

func newDashboardFixture() (*DashboardService, *fakeDriverStore, *fakeBookingStore) {
	drivers := newFakeDriverStore()
	bookings := newFakeBookingStore()
	svc := NewDashboardService(drivers, bookings, zap.NewNop())
	return svc, drivers, bookings
}

func onlineDriver(drivers *fakeDriverStore, email string) *models.Driver {
	driver := &models.Driver{
		Email:     email,
		FirstName: "Test",
		Surname:   "Driver",
		Status:    models.StatusApproved,
		IsOnline:  true,
	}
	drivers.add(driver)
	return driver
}

func pendingBooking(bookings *fakeBookingStore, expiresIn time.Duration) *models.Booking {
	booking := &models.Booking{
		Status:         models.BookingPending,
		Fare:           12.50,
		PickupLocation: "Airport",
		PassengerName:  "Bob",
		CreatedAt:      time.Now().UTC(),
		ExpiresAt:      time.Now().UTC().Add(expiresIn),
	}
	bookings.add(booking)
	return booking
}

func TestCurrentDriver(t *testing.T) {
	svc, drivers, _ := newDashboardFixture()
	driver := onlineDriver(drivers, "a@example.com")

	got, err := svc.CurrentDriver(context.Background(), driver.ID.Hex())
	if err != nil {
		t.Fatalf("current driver: %v", err)
	}
	if got.ID != driver.ID {
		t.Fatalf("wrong driver returned")
	}

	if _, err := svc.CurrentDriver(context.Background(), "zzz"); !errors.Is(err, ErrDriverNotFound) {
		t.Fatalf("malformed id: expected ErrDriverNotFound, got %v", err)
	}
	if _, err := svc.CurrentDriver(context.Background(), "507f1f77bcf86cd799439011"); !errors.Is(err, ErrDriverNotFound) {
		t.Fatalf("unknown id: expected ErrDriverNotFound, got %v", err)
	}
}

func TestBookingRequests_OfflineDriverGetsEmptyList(t *testing.T) {
	svc, drivers, bookings := newDashboardFixture()
	driver := onlineDriver(drivers, "a@example.com")
	driver.IsOnline = false
	pendingBooking(bookings, time.Hour)

	list, err := svc.BookingRequests(context.Background(), driver)
	if err != nil {
		t.Fatalf("offline driver must not error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("offline driver should see no bookings, got %d", len(list))
	}
}

func TestBookingRequests_OnlineDriverSeesPending(t *testing.T) {
	svc, drivers, bookings := newDashboardFixture()
	driver := onlineDriver(drivers, "a@example.com")
	pendingBooking(bookings, time.Hour)
	pendingBooking(bookings, -time.Minute) // expired, must be filtered out

	list, err := svc.BookingRequests(context.Background(), driver)
	if err != nil {
		t.Fatalf("booking requests: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 claimable booking, got %d", len(list))
	}
}

func TestAcceptBooking_Success(t *testing.T) {
	svc, drivers, bookings := newDashboardFixture()
	driver := onlineDriver(drivers, "a@example.com")
	booking := pendingBooking(bookings, time.Hour)

	accepted, err := svc.AcceptBooking(context.Background(), driver, booking.ID.Hex())
	if err != nil {
		t.Fatalf("accept booking: %v", err)
	}
	if accepted.BookingID != booking.ID.Hex() {
		t.Fatalf("accepted wrong booking")
	}
	if accepted.PickupLocation != "Airport" || accepted.Fare != 12.50 {
		t.Fatalf("accepted booking details wrong: %+v", accepted)
	}

	stored, err := bookings.FindByID(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("booking lost: %v", err)
	}
	if stored.Status != models.BookingAccepted {
		t.Fatalf("booking status = %q, want accepted", stored.Status)
	}
	if stored.AssignedDriverID == nil || *stored.AssignedDriverID != driver.ID.Hex() {
		t.Fatalf("booking not assigned to driver")
	}
	if stored.DriverName != "Test Driver" {
		t.Fatalf("driver name = %q, want Test Driver", stored.DriverName)
	}

	// Driver is marked busy with the booking.
	updated, err := drivers.FindByID(context.Background(), driver.ID)
	if err != nil {
		t.Fatalf("driver lost: %v", err)
	}
	if !updated.IsBusy || updated.CurrentBookingID != booking.ID.Hex() {
		t.Fatalf("driver busy state not set: busy=%v booking=%q", updated.IsBusy, updated.CurrentBookingID)
	}
}

func TestAcceptBooking_Errors(t *testing.T) {
	svc, drivers, bookings := newDashboardFixture()
	driver := onlineDriver(drivers, "a@example.com")

	if _, err := svc.AcceptBooking(context.Background(), driver, "not-hex"); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("malformed id: expected ErrBookingNotFound, got %v", err)
	}
	if _, err := svc.AcceptBooking(context.Background(), driver, "507f1f77bcf86cd799439011"); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("unknown id: expected ErrBookingNotFound, got %v", err)
	}

	expired := pendingBooking(bookings, -time.Minute)
	if _, err := svc.AcceptBooking(context.Background(), driver, expired.ID.Hex()); !errors.Is(err, ErrBookingExpired) {
		t.Fatalf("expected ErrBookingExpired, got %v", err)
	}

	other := "other-driver"
	taken := pendingBooking(bookings, time.Hour)
	taken.AssignedDriverID = &other
	if _, err := svc.AcceptBooking(context.Background(), driver, taken.ID.Hex()); !errors.Is(err, ErrBookingTaken) {
		t.Fatalf("expected ErrBookingTaken for assigned booking, got %v", err)
	}

	accepted := pendingBooking(bookings, time.Hour)
	accepted.Status = models.BookingAccepted
	if _, err := svc.AcceptBooking(context.Background(), driver, accepted.ID.Hex()); !errors.Is(err, ErrBookingTaken) {
		t.Fatalf("expected ErrBookingTaken for non-pending booking, got %v", err)
	}
}

func TestAcceptBooking_Exclusive(t *testing.T) {
	svc, drivers, bookings := newDashboardFixture()
	driverA := onlineDriver(drivers, "a@example.com")
	driverB := onlineDriver(drivers, "b@example.com")
	booking := pendingBooking(bookings, time.Hour)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, driver := range []*models.Driver{driverA, driverB} {
		wg.Add(1)
		go func(i int, d *models.Driver) {
			defer wg.Done()
			_, errs[i] = svc.AcceptBooking(context.Background(), d, booking.ID.Hex())
		}(i, driver)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrBookingTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d conflicts", successes, conflicts)
	}

	// Any later attempt fails as well.
	if _, err := svc.AcceptBooking(context.Background(), driverA, booking.ID.Hex()); !errors.Is(err, ErrBookingTaken) {
		t.Fatalf("accept on claimed booking: expected ErrBookingTaken, got %v", err)
	}
}

func TestStats_TodayOnly(t *testing.T) {
	svc, drivers, bookings := newDashboardFixture()
	driver := onlineDriver(drivers, "a@example.com")
	driverID := driver.ID.Hex()

	now := time.Now().UTC()
	yesterday := now.Add(-25 * time.Hour)
	completed := func(fare float64, at time.Time) {
		bookings.add(&models.Booking{
			Status:           models.BookingCompleted,
			AssignedDriverID: &driverID,
			Fare:             fare,
			CompletedAt:      &at,
		})
	}
	completed(10, now)
	completed(15.5, now)
	completed(99, yesterday) // outside the UTC day window

	stats, err := svc.Stats(context.Background(), driver)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TripsCompleted != 2 {
		t.Fatalf("trips completed = %d, want 2", stats.TripsCompleted)
	}
	if stats.TodayEarnings != 25.5 {
		t.Fatalf("today earnings = %v, want 25.5", stats.TodayEarnings)
	}
	if stats.DriverName != "Test Driver" {
		t.Fatalf("driver name = %q", stats.DriverName)
	}
}

func TestSetOnline(t *testing.T) {
	svc, drivers, _ := newDashboardFixture()
	driver := onlineDriver(drivers, "a@example.com")

	if err := svc.SetOnline(context.Background(), driver, false); err != nil {
		t.Fatalf("set online: %v", err)
	}
	stored, err := drivers.FindByID(context.Background(), driver.ID)
	if err != nil {
		t.Fatalf("driver lost: %v", err)
	}
	if stored.IsOnline {
		t.Fatal("driver should be offline")
	}
	if stored.LastOnlineUpdate == nil {
		t.Fatal("last_online_update not set")
	}
}
