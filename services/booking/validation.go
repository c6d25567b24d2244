package booking

import (
	"errors"
	"io"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/Oumer1234/service-marketplace/models"

	"github.com/go-playground/validator/v10"
)

// MaxDetailsLength is the longest accepted booking description.
const MaxDetailsLength = 300

// Upload is an attachment received with a booking request.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreateBookingInput is the typed booking request. SeekerID is never part of it.
type CreateBookingInput struct {
	ProviderID         string            `json:"providerId" validate:"required"`
	Date               string            `json:"date" validate:"required"`
	Time               string            `json:"time" validate:"required"`
	Service            string            `json:"service"`
	Details            string            `json:"details" validate:"required,max=300"`
	Budget             *float64          `json:"budget" validate:"omitempty,finite,gte=0"`
	Location           string            `json:"location" validate:"required"`
	LocationDetails    string            `json:"locationDetails"`
	Notes              string            `json:"notes"`
	AdditionalServices []string          `json:"additionalServices"`
	SeekerInfo         models.SeekerInfo `json:"seekerInfo"`
	Attachments        []Upload          `json:"-"`
}

type statusUpdate struct {
	Status models.BookingStatus `json:"status" validate:"required,bookingstatus,resolution"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("bookingstatus", func(fl validator.FieldLevel) bool {
		_, err := models.ParseBookingStatus(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("resolution", func(fl validator.FieldLevel) bool {
		return models.BookingStatus(fl.Field().String()).IsResolution()
	})
	// Inf and NaN cannot be rendered as JSON.
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() != reflect.Float32 && f.Kind() != reflect.Float64 {
			return false
		}
		return !math.IsInf(f.Float(), 0) && !math.IsNaN(f.Float())
	})
	return v
}

// normalize trims free-text fields and deduplicates additional services in place.
func (in *CreateBookingInput) normalize() {
	in.ProviderID = strings.TrimSpace(in.ProviderID)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Service = strings.TrimSpace(in.Service)
	in.Details = strings.TrimSpace(in.Details)
	in.Location = strings.TrimSpace(in.Location)
	in.LocationDetails = strings.TrimSpace(in.LocationDetails)
	in.Notes = strings.TrimSpace(in.Notes)
	in.SeekerInfo.Name = strings.TrimSpace(in.SeekerInfo.Name)
	in.SeekerInfo.Email = strings.TrimSpace(in.SeekerInfo.Email)
	in.SeekerInfo.Phone = strings.TrimSpace(in.SeekerInfo.Phone)
	in.AdditionalServices = dedupe(in.AdditionalServices)
}

// validateCreate reports every missing required field in one message.
func validateCreate(in *CreateBookingInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newError(CodeInvalidArgument, "Invalid booking request")
	}

	var missing []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "max":
			return newError(CodeInvalidArgument, "details must be at most 300 characters")
		case "finite":
			return newError(CodeInvalidArgument, "budget must be a number")
		case "gte":
			return newError(CodeInvalidArgument, "budget must not be negative")
		default:
			return newError(CodeInvalidArgument, "invalid value for "+fe.Field())
		}
	}
	return newError(CodeInvalidArgument, "Missing required fields: "+strings.Join(missing, ", "))
}

func validateStatus(status models.BookingStatus) error {
	if err := validate.Struct(statusUpdate{Status: status}); err != nil {
		return newError(CodeInvalidArgument, "Invalid status. Must be 'accepted' or 'rejected'")
	}
	return nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, newError(CodeInvalidArgument, "date must be YYYY-MM-DD or RFC 3339")
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
