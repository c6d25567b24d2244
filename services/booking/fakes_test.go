package booking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	bookingRepo "github.com/Oumer1234/service-marketplace/database/repository/booking"
	providerRepo "github.com/Oumer1234/service-marketplace/database/repository/provider"
	userRepo "github.com/Oumer1234/service-marketplace/database/repository/user"
	"github.com/Oumer1234/service-marketplace/models"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	err      error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]models.Booking{}}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (f *fakeBookingRepo) sorted(match func(models.Booking) bool) []models.Booking {
	out := make([]models.Booking, 0)
	for _, b := range f.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeBookingRepo) ListByProvider(_ context.Context, providerID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.sorted(func(b models.Booking) bool { return b.ProviderID == providerID }), nil
}

func (f *fakeBookingRepo) ListBySeeker(_ context.Context, seekerID string, limit int64) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := f.sorted(func(b models.Booking) bool { return b.SeekerID == seekerID })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBookingRepo) TransitionStatus(_ context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return nil, bookingRepo.ErrStatusConflict
	}
	b.Status = to
	b.UpdatedAt = b.UpdatedAt.Add(time.Minute)
	f.bookings[id] = b
	return &b, nil
}

func (f *fakeBookingRepo) CountByStatus(_ context.Context) (map[models.BookingStatus]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[models.BookingStatus]int64{
		models.BookingPending:  0,
		models.BookingAccepted: 0,
		models.BookingRejected: 0,
	}
	for _, b := range f.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	if p, ok := f.providers[id]; ok {
		return p, nil
	}
	return nil, providerRepo.ErrProviderNotFound
}

func (f *fakeProviderRepo) GetByUserID(_ context.Context, userID string) (*models.Provider, error) {
	for _, p := range f.providers {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, providerRepo.ErrProviderNotFound
}

func (f *fakeProviderRepo) GetByIDs(_ context.Context, ids []string) (map[string]*models.Provider, error) {
	out := map[string]*models.Provider{}
	for _, id := range ids {
		if p, ok := f.providers[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []string) (map[string]*models.User, error) {
	out := map[string]*models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type fakeStore struct {
	names []string
	fail  bool
}

func (f *fakeStore) Put(_ context.Context, name string, body io.Reader, _ string) (string, error) {
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	f.names = append(f.names, name)
	return "https://cdn.example.com/" + name, nil
}

type fakeEnqueuer struct {
	payloads []models.BookingNotificationPayload
	err      error
}

func (f *fakeEnqueuer) EnqueueBookingNotification(_ context.Context, p models.BookingNotificationPayload) error {
	f.payloads = append(f.payloads, p)
	return f.err
}

type fixture struct {
	svc       *DefaultBookingService
	bookings  *fakeBookingRepo
	providers *fakeProviderRepo
	users     *fakeUserRepo
	store     *fakeStore
	notifier  *fakeEnqueuer
}

var (
	seekerS1   = models.Actor{UserID: "S1", Email: "s1@example.com", Role: models.RoleSeeker}
	seekerS2   = models.Actor{UserID: "S2", Email: "s2@example.com", Role: models.RoleSeeker}
	ownerP1    = models.Actor{UserID: "P1-owner", Email: "p1@example.com", Role: models.RoleProvider}
	ownerP2    = models.Actor{UserID: "P2-owner", Email: "p2@example.com", Role: models.RoleProvider}
	adminActor = models.Actor{UserID: "A1", Role: models.RoleAdmin}
)

func newFixture() *fixture {
	f := &fixture{
		bookings: newFakeBookingRepo(),
		providers: &fakeProviderRepo{providers: map[string]*models.Provider{
			"P1": {ID: "P1", UserID: "P1-owner", Name: "Plumb Co", Rating: 4.5, ReviewCount: 12},
			"P2": {ID: "P2", UserID: "P2-owner", Name: "Sparks Ltd", Rating: 3.9, ReviewCount: 4},
		}},
		users: &fakeUserRepo{users: map[string]*models.User{
			"S1":       {ID: "S1", Name: "Sam Seeker", Email: "s1@example.com"},
			"S2":       {ID: "S2", Name: "Sue Seeker", Email: "s2@example.com"},
			"P1-owner": {ID: "P1-owner", Name: "Pat Plumber", Email: "p1@example.com", Image: "https://img/p1.png"},
			"P2-owner": {ID: "P2-owner", Name: "Sid Sparks", Email: "p2@example.com"},
		}},
		store:    &fakeStore{},
		notifier: &fakeEnqueuer{},
	}
	svc, err := NewDefaultBookingService(f.bookings, f.providers, f.users, f.store, f.notifier, nil)
	if err != nil {
		panic(err)
	}
	seq := 0
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("bk-%d", seq)
	}
	svc.now = func() time.Time { return base.Add(time.Duration(seq) * time.Hour) }
	f.svc = svc
	return f
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		ProviderID: "P1",
		Date:       "2024-06-01",
		Time:       "10:00",
		Details:    "Fix sink",
		Location:   "NYC",
	}
}

func budget(v float64) *float64 {
	return &v
}
