package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Oumer1234/service-marketplace/middleware"
	"github.com/Oumer1234/service-marketplace/models"
	"github.com/Oumer1234/service-marketplace/services/booking"
	"github.com/Oumer1234/service-marketplace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateBookingRequest is the JSON body of POST /booking. In multipart requests the
// same document may be sent in the "data" field.
type CreateBookingRequest struct {
	ProviderID         string            `json:"providerId"`
	Date               string            `json:"date"`
	Time               string            `json:"time"`
	Service            string            `json:"service"`
	Details            string            `json:"details"`
	Budget             *float64          `json:"budget"`
	Location           string            `json:"location"`
	LocationDetails    string            `json:"locationDetails"`
	Notes              string            `json:"notes"`
	AdditionalServices []string          `json:"additionalServices"`
	SeekerInfo         models.SeekerInfo `json:"seekerInfo"`
}

func (r CreateBookingRequest) input() booking.CreateBookingInput {
	return booking.CreateBookingInput{
		ProviderID:         r.ProviderID,
		Date:               r.Date,
		Time:               r.Time,
		Service:            r.Service,
		Details:            r.Details,
		Budget:             r.Budget,
		Location:           r.Location,
		LocationDetails:    r.LocationDetails,
		Notes:              r.Notes,
		AdditionalServices: r.AdditionalServices,
		SeekerInfo:         r.SeekerInfo,
	}
}

// UpdateStatusRequest is the body of PUT /booking/:id.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type BookingHandler struct {
	svc                booking.BookingService
	maxAttachmentBytes int64
	maxAttachments     int
}

func NewBookingHandler(svc booking.BookingService, maxAttachmentBytes int64, maxAttachments int) *BookingHandler {
	return &BookingHandler{svc: svc, maxAttachmentBytes: maxAttachmentBytes, maxAttachments: maxAttachments}
}

// CreateBookingHandler handles POST /booking with a JSON or multipart body.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if actor.IsZero() {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var (
		input   booking.CreateBookingInput
		closers []io.Closer
	)
	defer func() { closeAll(closers) }()

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var err error
		input, closers, err = h.parseMultipart(c)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
		input = req.input()
	}

	created, err := h.svc.CreateBooking(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}

	getLogger(c).Info("Booking request accepted", zap.String("bookingId", created.ID))
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": created})
}

// parseMultipart reads either a "data" JSON field or the flat form fields, plus
// files under "attachments". The returned closers must be closed by the caller.
func (h *BookingHandler) parseMultipart(c *gin.Context) (booking.CreateBookingInput, []io.Closer, error) {
	if h.maxAttachmentBytes > 0 && h.maxAttachments > 0 {
		limit := h.maxAttachmentBytes*int64(h.maxAttachments) + 1<<20
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return booking.CreateBookingInput{}, nil, errors.New("invalid multipart body")
	}

	var req CreateBookingRequest
	if data := formValue(form, "data"); data != "" {
		if err := json.Unmarshal([]byte(data), &req); err != nil {
			return booking.CreateBookingInput{}, nil, errors.New("invalid data field")
		}
	} else {
		req, err = requestFromForm(form)
		if err != nil {
			return booking.CreateBookingInput{}, nil, err
		}
	}
	input := req.input()

	files := form.File["attachments"]
	if h.maxAttachments > 0 && len(files) > h.maxAttachments {
		return booking.CreateBookingInput{}, nil, fmt.Errorf("at most %d attachments are allowed", h.maxAttachments)
	}

	var closers []io.Closer
	for _, fh := range files {
		if h.maxAttachmentBytes > 0 && fh.Size > h.maxAttachmentBytes {
			closeAll(closers)
			return booking.CreateBookingInput{}, nil, fmt.Errorf("attachment %s is too large", fh.Filename)
		}
		f, err := fh.Open()
		if err != nil {
			closeAll(closers)
			return booking.CreateBookingInput{}, nil, fmt.Errorf("could not read attachment %s", fh.Filename)
		}
		closers = append(closers, f)
		input.Attachments = append(input.Attachments, booking.Upload{
			Filename:    fh.Filename,
			ContentType: attachmentContentType(fh),
			Body:        f,
		})
	}
	return input, closers, nil
}

// requestFromForm reads the flat fields sent by the hire form.
func requestFromForm(form *multipart.Form) (CreateBookingRequest, error) {
	req := CreateBookingRequest{
		ProviderID:         formValue(form, "providerId"),
		Date:               formValue(form, "date"),
		Time:               formValue(form, "time"),
		Service:            formValue(form, "service"),
		Details:            formValue(form, "details"),
		Location:           formValue(form, "location"),
		LocationDetails:    formValue(form, "locationDetails"),
		Notes:              formValue(form, "notes"),
		AdditionalServices: form.Value["additionalServices"],
	}

	if raw := strings.TrimSpace(formValue(form, "budget")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return req, errors.New("budget must be a number")
		}
		req.Budget = &v
	}
	if raw := formValue(form, "seekerInfo"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.SeekerInfo); err != nil {
			return req, errors.New("seekerInfo must be a JSON object")
		}
	}
	return req, nil
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func attachmentContentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}

// GetBookingHandler handles GET /booking/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	view, err := h.svc.GetBooking(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateBookingStatusHandler handles PUT /booking/:id.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.svc.UpdateStatus(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"), models.BookingStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
