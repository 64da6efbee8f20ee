package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hotride-driver-api/models"
	"hotride-driver-api/stores"
)

type fakeDriverStore struct {
	mu      sync.Mutex
	drivers map[primitive.ObjectID]*models.Driver
}

func newFakeDriverStore() *fakeDriverStore {
	return &fakeDriverStore{drivers: make(map[primitive.ObjectID]*models.Driver)}
}

func (f *fakeDriverStore) add(driver *models.Driver) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if driver.ID.IsZero() {
		driver.ID = primitive.NewObjectID()
	}
	f.drivers[driver.ID] = driver
	return driver.ID
}

func (f *fakeDriverStore) Insert(ctx context.Context, driver *models.Driver) (primitive.ObjectID, error) {
	return f.add(driver), nil
}

func (f *fakeDriverStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.drivers[id]; ok {
		dup := *d
		return &dup, nil
	}
	return nil, stores.ErrNotFound
}

func (f *fakeDriverStore) FindByEmail(ctx context.Context, email string) (*models.Driver, error) {
	return f.findBy(func(d *models.Driver) bool { return d.Email == email })
}

func (f *fakeDriverStore) FindByIdentifier(ctx context.Context, emailOrUsername string) (*models.Driver, error) {
	return f.findBy(func(d *models.Driver) bool {
		return d.Email == emailOrUsername || (d.Username != "" && d.Username == emailOrUsername)
	})
}

func (f *fakeDriverStore) FindByEmailOrPhone(ctx context.Context, emailOrPhone string) (*models.Driver, error) {
	return f.findBy(func(d *models.Driver) bool {
		return d.Email == emailOrPhone || d.PrimaryPhone == emailOrPhone
	})
}

func (f *fakeDriverStore) SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash, username string) error {
	return f.update(id, func(d *models.Driver) {
		d.PasswordHash = passwordHash
		d.Username = username
	})
}

func (f *fakeDriverStore) SetOnline(ctx context.Context, id primitive.ObjectID, online bool) error {
	return f.update(id, func(d *models.Driver) {
		now := time.Now().UTC()
		d.IsOnline = online
		d.LastOnlineUpdate = &now
	})
}

func (f *fakeDriverStore) SetBusy(ctx context.Context, id primitive.ObjectID, bookingID string) error {
	return f.update(id, func(d *models.Driver) {
		d.CurrentBookingID = bookingID
		d.IsBusy = true
	})
}

func (f *fakeDriverStore) AttachPhoto(ctx context.Context, id primitive.ObjectID, photoURL, originalFilename string) error {
	return f.update(id, func(d *models.Driver) {
		d.ProfilePhotoURL = photoURL
		d.ProfilePhotoFilename = originalFilename
	})
}

func (f *fakeDriverStore) findBy(match func(*models.Driver) bool) (*models.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.drivers {
		if match(d) {
			dup := *d
			return &dup, nil
		}
	}
	return nil, stores.ErrNotFound
}

func (f *fakeDriverStore) update(id primitive.ObjectID, apply func(*models.Driver)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drivers[id]
	if !ok {
		return stores.ErrNotFound
	}
	apply(d)
	return nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (f *fakeBookingStore) add(booking *models.Booking) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	f.bookings[booking.ID] = booking
	return booking.ID
}

func (f *fakeBookingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[id]; ok {
		dup := *b
		return &dup, nil
	}
	return nil, stores.ErrNotFound
}

func (f *fakeBookingStore) ListPending(ctx context.Context, now time.Time, limit int64) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.Status == models.BookingPending && b.AssignedDriverID == nil && b.ExpiresAt.After(now) {
			out = append(out, *b)
		}
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeBookingStore) Claim(ctx context.Context, id primitive.ObjectID, driverID, driverName string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return false, nil
	}
	if b.Status != models.BookingPending || b.AssignedDriverID != nil || !b.ExpiresAt.After(now) {
		return false, nil
	}
	b.AssignedDriverID = &driverID
	b.DriverName = driverName
	b.Status = models.BookingAccepted
	b.AcceptedAt = &now
	return true, nil
}

func (f *fakeBookingStore) TodayStats(ctx context.Context, driverID string, dayStart, dayEnd time.Time) (stores.DayStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var stats stores.DayStats
	for _, b := range f.bookings {
		if b.AssignedDriverID == nil || *b.AssignedDriverID != driverID {
			continue
		}
		if b.Status != models.BookingCompleted || b.CompletedAt == nil {
			continue
		}
		if b.CompletedAt.Before(dayStart) || !b.CompletedAt.Before(dayEnd) {
			continue
		}
		stats.TripsCompleted++
		stats.TotalFare += b.Fare
	}
	return stats, nil
}

type fakeResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*models.ResetToken
}

func newFakeResetTokenStore() *fakeResetTokenStore {
	return &fakeResetTokenStore{tokens: make(map[string]*models.ResetToken)}
}

func (f *fakeResetTokenStore) Insert(ctx context.Context, token *models.ResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	dup := *token
	f.tokens[token.Token] = &dup
	return nil
}

func (f *fakeResetTokenStore) FindValid(ctx context.Context, token string, now time.Time) (*models.ResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.tokens[token]
	if !ok || doc.Used || !doc.ExpiresAt.After(now) {
		return nil, stores.ErrNotFound
	}
	dup := *doc
	return &dup, nil
}

func (f *fakeResetTokenStore) MarkUsed(ctx context.Context, token string, usedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.tokens[token]
	if !ok {
		return stores.ErrNotFound
	}
	doc.Used = true
	doc.UsedAt = &usedAt
	return nil
}

func (f *fakeResetTokenStore) expire(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.tokens[token]; ok {
		doc.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	}
}
