package booking

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	bookingRepo "github.com/Oumer1234/service-marketplace/database/repository/booking"
	providerRepo "github.com/Oumer1234/service-marketplace/database/repository/provider"
	userRepo "github.com/Oumer1234/service-marketplace/database/repository/user"
	"github.com/Oumer1234/service-marketplace/models"
	"github.com/Oumer1234/service-marketplace/services/notification"
	"github.com/Oumer1234/service-marketplace/services/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func NewDefaultBookingService(
	bookings bookingRepo.BookingRepository,
	providers providerRepo.ProviderRepository,
	users userRepo.UserRepository,
	store storage.BlobStore,
	notifier notification.Enqueuer,
	logger *zap.Logger,
) (*DefaultBookingService, error) {
	if bookings == nil || providers == nil || users == nil {
		return nil, fmt.Errorf("booking service initialization error: repositories must not be nil")
	}
	if notifier == nil {
		notifier = notification.NoopEnqueuer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		Bookings:  bookings,
		Providers: providers,
		Users:     users,
		Store:     store,
		Notifier:  notifier,
		Logger:    logger,
	}, nil
}

func (s *DefaultBookingService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

func (s *DefaultBookingService) id() string {
	if s.newID != nil {
		return s.newID()
	}
	return uuid.New().String()
}

func (s *DefaultBookingService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, actor models.Actor, input CreateBookingInput) (*models.Booking, error) {
	if actor.IsZero() {
		return nil, newError(CodeUnauthorized, "Unauthorized")
	}

	input.normalize()
	if err := validateCreate(&input); err != nil {
		return nil, err
	}
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	provider, err := s.Providers.GetByID(ctx, input.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, newError(CodeNotFound, "Provider not found")
		}
		return nil, internalError("failed to load provider", err)
	}

	now := s.clock()
	b := &models.Booking{
		ID:                 s.id(),
		ProviderID:         provider.ID,
		SeekerID:           actor.UserID,
		Date:               date,
		Time:               input.Time,
		Service:            input.Service,
		Details:            input.Details,
		Budget:             input.Budget,
		Location:           input.Location,
		LocationDetails:    input.LocationDetails,
		Notes:              input.Notes,
		Status:             models.BookingPending,
		AdditionalServices: input.AdditionalServices,
		SeekerInfo:         input.SeekerInfo,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	b.Attachments, err = s.storeAttachments(ctx, b.ID, input.Attachments)
	if err != nil {
		return nil, err
	}

	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, internalError("failed to create booking", err)
	}

	s.log().Info("Booking created",
		zap.String("bookingId", b.ID),
		zap.String("providerId", b.ProviderID),
		zap.String("seekerId", b.SeekerID),
		zap.Int("attachments", len(b.Attachments)),
	)

	s.notify(ctx, models.BookingNotificationPayload{
		RecipientID: provider.UserID,
		Type:        models.NotificationBookingRequested,
		BookingID:   b.ID,
		Title:       "New booking request",
		Message:     fmt.Sprintf("You have a new booking request for %s at %s.", b.Date.Format("2006-01-02"), b.Time),
	})
	return b, nil
}

// storeAttachments uploads files in order and returns their URLs. Nothing is
// persisted if any upload fails.
func (s *DefaultBookingService) storeAttachments(ctx context.Context, bookingID string, uploads []Upload) ([]string, error) {
	urls := make([]string, 0, len(uploads))
	if len(uploads) == 0 {
		return urls, nil
	}
	if s.Store == nil {
		return nil, newError(CodeInvalidArgument, "Attachments are not supported")
	}
	for i, u := range uploads {
		name := fmt.Sprintf("%s/%d-%s", bookingID, i, path.Base(u.Filename))
		url, err := s.Store.Put(ctx, name, u.Body, u.ContentType)
		if err != nil {
			return nil, internalError("failed to store attachment", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, actor models.Actor, id string) (*models.BookingView, error) {
	if actor.IsZero() {
		return nil, newError(CodeUnauthorized, "Unauthorized")
	}

	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	provider, err := s.lookupProvider(ctx, b.ProviderID)
	if err != nil {
		return nil, err
	}
	if CanAccess(actor, b, provider) != Allowed {
		return nil, newError(CodeForbidden, "Forbidden")
	}
	return s.populate(ctx, b, provider)
}

func (s *DefaultBookingService) ListProviderBookings(ctx context.Context, actor models.Actor) ([]models.BookingView, error) {
	provider, err := s.ownedProvider(ctx, actor)
	if err != nil {
		return nil, err
	}

	bookings, err := s.Bookings.ListByProvider(ctx, provider.ID)
	if err != nil {
		return nil, internalError("failed to list provider bookings", err)
	}

	seekers, err := s.Users.GetByIDs(ctx, seekerIDs(bookings))
	if err != nil {
		return nil, internalError("failed to resolve seekers", err)
	}

	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		seeker, ok := seekers[b.SeekerID]
		if !ok {
			s.log().Warn("Dropping booking with unresolved seeker",
				zap.String("bookingId", b.ID),
				zap.String("seekerId", b.SeekerID),
			)
			continue
		}
		views = append(views, models.BookingView{Booking: b, Seeker: seeker.Summary()})
	}
	return views, nil
}

func (s *DefaultBookingService) ListSeekerBookings(ctx context.Context, actor models.Actor) ([]models.BookingView, error) {
	if actor.IsZero() {
		return nil, newError(CodeUnauthorized, "Unauthorized")
	}

	bookings, err := s.Bookings.ListBySeeker(ctx, actor.UserID, SeekerBookingsLimit)
	if err != nil {
		return nil, internalError("failed to list seeker bookings", err)
	}

	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ProviderID)
	}
	providers, err := s.Providers.GetByIDs(ctx, ids)
	if err != nil {
		return nil, internalError("failed to resolve providers", err)
	}

	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		v := models.BookingView{Booking: b}
		if p, ok := providers[b.ProviderID]; ok {
			v.Provider = providerSummary(p, nil)
		}
		views = append(views, v)
	}
	return views, nil
}

// UpdateStatus resolves a pending booking. Checks run in a fixed order: existence,
// ownership, current state, then the requested status. The write itself is a
// compare-and-set on the pending status.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.BookingStatus) (*models.BookingView, error) {
	if actor.IsZero() {
		return nil, newError(CodeUnauthorized, "Unauthorized")
	}

	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	provider, err := s.lookupProvider(ctx, b.ProviderID)
	if err != nil {
		return nil, err
	}
	if CanTransition(actor, provider) != Allowed {
		return nil, newError(CodeForbidden, "Forbidden")
	}
	if err := checkTransition(b.Status, status); err != nil {
		return nil, err
	}

	updated, err := s.Bookings.TransitionStatus(ctx, b.ID, b.Status, status)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			return nil, newError(CodeInvalidTransition, "Booking has already been resolved")
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, newError(CodeNotFound, "Booking not found")
		default:
			return nil, internalError("failed to update booking status", err)
		}
	}

	s.log().Info("Booking status updated",
		zap.String("bookingId", updated.ID),
		zap.String("from", b.Status.String()),
		zap.String("to", updated.Status.String()),
		zap.String("actor", actor.UserID),
	)

	s.notify(ctx, resolutionNotification(updated, provider))
	return s.populate(ctx, updated, provider)
}

func (s *DefaultBookingService) ComputeStats(ctx context.Context, actor models.Actor) (*models.ProviderStats, error) {
	provider, err := s.ownedProvider(ctx, actor)
	if err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.ListByProvider(ctx, provider.ID)
	if err != nil {
		return nil, internalError("failed to load provider bookings", err)
	}
	stats := Summarize(bookings, provider)
	return &stats, nil
}

func (s *DefaultBookingService) Overview(ctx context.Context, actor models.Actor) (*Overview, error) {
	if actor.IsZero() {
		return nil, newError(CodeUnauthorized, "Unauthorized")
	}

	out := &Overview{Role: actor.Role.String()}
	switch actor.Role {
	case models.RoleSeeker:
		bookings, err := s.ListSeekerBookings(ctx, actor)
		if err != nil {
			return nil, err
		}
		out.Bookings = bookings
	case models.RoleProvider:
		stats, err := s.ComputeStats(ctx, actor)
		if err != nil {
			return nil, err
		}
		bookings, err := s.ListProviderBookings(ctx, actor)
		if err != nil {
			return nil, err
		}
		out.Stats = stats
		out.Bookings = bookings
	case models.RoleAdmin:
		counts, err := s.Bookings.CountByStatus(ctx)
		if err != nil {
			return nil, internalError("failed to count bookings", err)
		}
		out.StatusCounts = counts
	default:
		return nil, newError(CodeUnauthorized, "Unknown role")
	}
	return out, nil
}

func (s *DefaultBookingService) loadBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, newError(CodeNotFound, "Booking not found")
		}
		return nil, internalError("failed to load booking", err)
	}
	return b, nil
}

// lookupProvider returns nil without error when the provider no longer exists.
func (s *DefaultBookingService) lookupProvider(ctx context.Context, id string) (*models.Provider, error) {
	p, err := s.Providers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, nil
		}
		return nil, internalError("failed to load provider", err)
	}
	return p, nil
}

func (s *DefaultBookingService) ownedProvider(ctx context.Context, actor models.Actor) (*models.Provider, error) {
	if actor.IsZero() {
		return nil, newError(CodeUnauthorized, "Unauthorized")
	}
	p, err := s.Providers.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, newError(CodeNotFound, "Service provider profile not found")
		}
		return nil, internalError("failed to load provider profile", err)
	}
	return p, nil
}

// populate attaches the provider and seeker display summaries. Unresolvable
// parties are left empty rather than failing the read.
func (s *DefaultBookingService) populate(ctx context.Context, b *models.Booking, provider *models.Provider) (*models.BookingView, error) {
	ids := []string{b.SeekerID}
	if provider != nil && provider.UserID != "" {
		ids = append(ids, provider.UserID)
	}
	users, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, internalError("failed to resolve booking parties", err)
	}

	view := &models.BookingView{Booking: *b}
	if seeker, ok := users[b.SeekerID]; ok {
		view.Seeker = seeker.Summary()
	}
	if provider != nil {
		view.Provider = providerSummary(provider, users[provider.UserID])
	}
	return view, nil
}

func (s *DefaultBookingService) notify(ctx context.Context, payload models.BookingNotificationPayload) {
	if s.Notifier == nil || payload.RecipientID == "" {
		return
	}
	if err := s.Notifier.EnqueueBookingNotification(ctx, payload); err != nil {
		s.log().Error("Failed to enqueue booking notification",
			zap.String("bookingId", payload.BookingID),
			zap.String("type", payload.Type),
			zap.Error(err),
		)
	}
}

func providerSummary(p *models.Provider, owner *models.User) *models.PartySummary {
	sum := &models.PartySummary{ID: p.ID, Name: p.Name, Image: p.ProfileImage}
	if owner != nil {
		sum.Email = owner.Email
		if sum.Image == "" {
			sum.Image = owner.Image
		}
	}
	return sum
}

func seekerIDs(bookings []models.Booking) []string {
	ids := make([]string, 0, len(bookings))
	seen := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.SeekerID]; ok {
			continue
		}
		seen[b.SeekerID] = struct{}{}
		ids = append(ids, b.SeekerID)
	}
	return ids
}
