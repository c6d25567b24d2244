package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Oumer1234/service-marketplace/middleware"
	"github.com/Oumer1234/service-marketplace/models"
	"github.com/Oumer1234/service-marketplace/services/booking"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubBookingService struct {
	createInput   booking.CreateBookingInput
	attachments   []string
	updatedStatus models.BookingStatus
	actor         models.Actor
	err           error
}

func (s *stubBookingService) CreateBooking(_ context.Context, actor models.Actor, in booking.CreateBookingInput) (*models.Booking, error) {
	s.actor = actor
	s.createInput = in
	for _, u := range in.Attachments {
		b, _ := io.ReadAll(u.Body)
		s.attachments = append(s.attachments, u.Filename+":"+u.ContentType+":"+string(b))
	}
	if s.err != nil {
		return nil, s.err
	}
	return &models.Booking{ID: "bk-1", ProviderID: in.ProviderID, SeekerID: actor.UserID, Status: models.BookingPending}, nil
}

func (s *stubBookingService) GetBooking(_ context.Context, actor models.Actor, id string) (*models.BookingView, error) {
	s.actor = actor
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingView{Booking: models.Booking{ID: id, Status: models.BookingPending}}, nil
}

func (s *stubBookingService) ListProviderBookings(context.Context, models.Actor) ([]models.BookingView, error) {
	return []models.BookingView{}, s.err
}

func (s *stubBookingService) ListSeekerBookings(context.Context, models.Actor) ([]models.BookingView, error) {
	return []models.BookingView{}, s.err
}

func (s *stubBookingService) UpdateStatus(_ context.Context, actor models.Actor, id string, status models.BookingStatus) (*models.BookingView, error) {
	s.actor = actor
	s.updatedStatus = status
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingView{Booking: models.Booking{ID: id, Status: status}}, nil
}

func (s *stubBookingService) ComputeStats(context.Context, models.Actor) (*models.ProviderStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.ProviderStats{TotalRevenue: 100, TotalBookings: 2}, nil
}

func (s *stubBookingService) Overview(_ context.Context, actor models.Actor) (*booking.Overview, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &booking.Overview{Role: actor.Role.String()}, nil
}

var seeker = models.Actor{UserID: "S1", Role: models.RoleSeeker}

func newBookingRouter(svc booking.BookingService, actor models.Actor) *gin.Engine {
	h := NewBookingHandler(svc, 1<<20, 2)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if !actor.IsZero() {
			middleware.WithActor(c, actor)
		}
		c.Next()
	})
	r.POST("/booking", h.CreateBookingHandler)
	r.GET("/booking/:id", h.GetBookingHandler)
	r.PUT("/booking/:id", h.UpdateBookingStatusHandler)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body.Error
}

func TestCreateBookingJSON(t *testing.T) {
	svc := &stubBookingService{}
	r := newBookingRouter(svc, seeker)

	w := serve(r, jsonRequest(http.MethodPost, "/booking",
		`{"providerId":"P1","date":"2024-06-01","time":"10:00","details":"Fix sink","location":"NYC","budget":120.5,"seekerId":"spoofed"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool           `json:"success"`
		Booking models.Booking `json:"booking"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Booking.SeekerID != "S1" || resp.Booking.Status != models.BookingPending {
		t.Fatalf("unexpected response %+v", resp)
	}
	if svc.actor.UserID != "S1" {
		t.Fatalf("seeker must come from the session, got %q", svc.actor.UserID)
	}
	if svc.createInput.Budget == nil || *svc.createInput.Budget != 120.5 {
		t.Fatalf("budget not passed through: %v", svc.createInput.Budget)
	}
}

func TestCreateBookingUnauthenticated(t *testing.T) {
	r := newBookingRouter(&stubBookingService{}, models.Actor{})

	w := serve(r, jsonRequest(http.MethodPost, "/booking", `{"providerId":"P1"}`))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCreateBookingMalformedJSON(t *testing.T) {
	r := newBookingRouter(&stubBookingService{}, seeker)

	w := serve(r, jsonRequest(http.MethodPost, "/booking", `{"providerId":`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateBookingServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"missing fields", &booking.Error{Code: booking.CodeInvalidArgument, Message: "Missing required fields: details"}, http.StatusBadRequest, "Missing required fields: details"},
		{"provider missing", &booking.Error{Code: booking.CodeNotFound, Message: "Provider not found"}, http.StatusNotFound, "Provider not found"},
		{"internal", errors.New("mongo: connection refused"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBookingRouter(&stubBookingService{err: tt.err}, seeker)
			w := serve(r, jsonRequest(http.MethodPost, "/booking", `{}`))
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if got := errorBody(t, w); got != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, got)
			}
		})
	}
}

func multipartRequest(t *testing.T, fields map[string][]string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range fields {
		for _, v := range vs {
			if err := mw.WriteField(k, v); err != nil {
				t.Fatalf("WriteField: %v", err)
			}
		}
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile("attachments", name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		fw.Write([]byte(content))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/booking", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCreateBookingMultipartFlatFields(t *testing.T) {
	svc := &stubBookingService{}
	r := newBookingRouter(svc, seeker)

	req := multipartRequest(t, map[string][]string{
		"providerId":         {"P1"},
		"date":               {"2024-06-01T00:00:00Z"},
		"time":               {"10:00"},
		"details":            {"Fix sink"},
		"location":           {"NYC"},
		"budget":             {"75"},
		"seekerInfo":         {`{"name":"Ann","email":"ann@example.com","phone":"555"}`},
		"additionalServices": {"parts", "cleanup"},
	}, map[string]string{"sink.txt": "leaking"})

	w := serve(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	in := svc.createInput
	if in.ProviderID != "P1" || in.Date != "2024-06-01T00:00:00Z" || in.Location != "NYC" {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.Budget == nil || *in.Budget != 75 {
		t.Fatalf("unexpected budget %v", in.Budget)
	}
	if in.SeekerInfo.Email != "ann@example.com" {
		t.Fatalf("unexpected seeker info %+v", in.SeekerInfo)
	}
	if len(in.AdditionalServices) != 2 {
		t.Fatalf("unexpected additional services %v", in.AdditionalServices)
	}
	if len(svc.attachments) != 1 || svc.attachments[0] != "sink.txt:application/octet-stream:leaking" {
		t.Fatalf("unexpected attachments %v", svc.attachments)
	}
}

func TestCreateBookingMultipartDataField(t *testing.T) {
	svc := &stubBookingService{}
	r := newBookingRouter(svc, seeker)

	req := multipartRequest(t, map[string][]string{
		"data": {`{"providerId":"P2","date":"2024-06-02","time":"09:00","details":"Wire lamp","location":"LA"}`},
	}, nil)

	w := serve(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.createInput.ProviderID != "P2" || svc.createInput.Details != "Wire lamp" {
		t.Fatalf("unexpected input %+v", svc.createInput)
	}
}

func TestCreateBookingMultipartRejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string][]string
		files  map[string]string
	}{
		{"budget", map[string][]string{"budget": {"lots"}}, nil},
		{"budget Inf", map[string][]string{"budget": {"Inf"}}, nil},
		{"budget Infinity", map[string][]string{"budget": {"+Infinity"}}, nil},
		{"budget NaN", map[string][]string{"budget": {"NaN"}}, nil},
		{"seekerInfo", map[string][]string{"seekerInfo": {"Ann"}}, nil},
		{"data", map[string][]string{"data": {"{"}}, nil},
		{"too many files", nil, map[string]string{"a.txt": "a", "b.txt": "b", "c.txt": "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBookingRouter(&stubBookingService{}, seeker)
			w := serve(r, multipartRequest(t, tt.fields, tt.files))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetBookingHandlerErrors(t *testing.T) {
	r := newBookingRouter(&stubBookingService{err: &booking.Error{Code: booking.CodeForbidden, Message: "Forbidden"}}, seeker)
	if w := serve(r, httptest.NewRequest(http.MethodGet, "/booking/bk-1", nil)); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	r = newBookingRouter(&stubBookingService{err: &booking.Error{Code: booking.CodeNotFound, Message: "Booking not found"}}, seeker)
	if w := serve(r, httptest.NewRequest(http.MethodGet, "/booking/bk-1", nil)); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	r = newBookingRouter(&stubBookingService{}, seeker)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/booking/bk-1", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":"bk-1"`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

func TestUpdateBookingStatusHandler(t *testing.T) {
	owner := models.Actor{UserID: "P1-owner", Role: models.RoleProvider}
	svc := &stubBookingService{}
	r := newBookingRouter(svc, owner)

	w := serve(r, jsonRequest(http.MethodPut, "/booking/bk-1", `{"status":" accepted "}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.updatedStatus != models.BookingAccepted || svc.actor.UserID != "P1-owner" {
		t.Fatalf("unexpected call status=%q actor=%q", svc.updatedStatus, svc.actor.UserID)
	}

	w = serve(r, jsonRequest(http.MethodPut, "/booking/bk-1", `not json`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}

	r = newBookingRouter(&stubBookingService{err: &booking.Error{Code: booking.CodeInvalidTransition, Message: "Booking status is already 'accepted'"}}, owner)
	w = serve(r, jsonRequest(http.MethodPut, "/booking/bk-1", `{"status":"rejected"}`))
	if w.Code != http.StatusBadRequest || errorBody(t, w) != "Booking status is already 'accepted'" {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}
