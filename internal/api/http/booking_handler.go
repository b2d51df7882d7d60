package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"homestay-backend/internal/apperr"
	"homestay-backend/internal/domain"
	"homestay-backend/internal/service"
)

var validate = validator.New()

type BookingHandler struct {
	bookings     service.BookingService
	availability service.AvailabilityService
}

func NewBookingHandler(bookings service.BookingService, availability service.AvailabilityService) *BookingHandler {
	return &BookingHandler{
		bookings:     bookings,
		availability: availability,
	}
}

type createRentalRequest struct {
	PropertyID int64     `json:"property_id" validate:"required"`
	StartAt    time.Time `json:"start_at" validate:"required"`
	EndAt      time.Time `json:"end_at" validate:"required"`
	GuestCount int32     `json:"guest_count" validate:"required,min=1,max=20"`
	Message    string    `json:"message" validate:"max=2000"`
}

type decisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVE REJECT"`
	Reason   string `json:"reason" validate:"max=2000"`
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

type listRentalsResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int32            `json:"total"`
	Page     int32            `json:"page"`
	PageSize int32            `json:"page_size"`
}

func (h *BookingHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	actorID, err := GetActorID(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	var req createRentalRequest
	if err := decodeAndValidate(r, &req); err != nil {
		apperr.WriteError(w, err)
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), actorID, req.PropertyID,
		domain.NewInterval(req.StartAt, req.EndAt), req.GuestCount, req.Message)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	actorID, err := GetActorID(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), actorID, bookingID)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	actorID, err := GetActorID(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	q := r.URL.Query()
	role := service.ListRole(q.Get("role"))
	status := q.Get("status")
	page := parseInt32(q.Get("page"), 1)
	pageSize := parseInt32(q.Get("page_size"), 20)

	bookings, total, err := h.bookings.ListBookings(r.Context(), actorID, role, status, page, pageSize)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	apperr.WriteJSON(w, http.StatusOK, listRentalsResponse{
		Bookings: bookings,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *BookingHandler) DecideRental(w http.ResponseWriter, r *http.Request) {
	actorID, err := GetActorID(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	var req decisionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		apperr.WriteError(w, err)
		return
	}

	booking, err := h.bookings.DecideBooking(r.Context(), actorID, bookingID, service.Decision(req.Decision), req.Reason)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CancelRental(w http.ResponseWriter, r *http.Request) {
	actorID, err := GetActorID(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	// Body is optional for cancels without a stated reason.
	var req cancelRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeAndValidate(r, &req); err != nil {
			apperr.WriteError(w, err)
			return
		}
	}

	booking, err := h.bookings.CancelBooking(r.Context(), actorID, bookingID, req.Reason)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.bookings.CheckIn)
}

func (h *BookingHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.bookings.CheckOut)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	propertyID, err := strconv.ParseInt(q.Get("property_id"), 10, 64)
	if err != nil {
		apperr.WriteError(w, apperr.Validation("property_id must be an integer"))
		return
	}
	startAt, err := time.Parse(time.RFC3339, q.Get("start"))
	if err != nil {
		apperr.WriteError(w, apperr.Validation("start must be an RFC3339 timestamp"))
		return
	}
	endAt, err := time.Parse(time.RFC3339, q.Get("end"))
	if err != nil {
		apperr.WriteError(w, apperr.Validation("end must be an RFC3339 timestamp"))
		return
	}

	availability, err := h.availability.CheckAvailability(r.Context(), propertyID, domain.NewInterval(startAt, endAt))
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, availability)
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, hostID, bookingID int64) (*domain.Booking, error)) {
	actorID, err := GetActorID(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	booking, err := op(r.Context(), actorID, bookingID)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, booking)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperr.Validation("booking id must be an integer")
	}
	return id, nil
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("request body is not valid JSON")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]any, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
			return apperr.Validation("request failed validation").WithDetails(details)
		}
		return apperr.Validation(err.Error())
	}
	return nil
}
