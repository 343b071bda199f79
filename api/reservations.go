package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/travelbook/internal/domain"
	"github.com/zvrva/travelbook/internal/service/reservation"
)

// principalHeader carries the authenticated caller's id, set by the auth
// layer in front of this service.
const principalHeader = "X-Principal-ID"

type ReservationHandler struct {
	service reservation.ReservationUseCase
}

type createReservationRequest struct {
	OfferingID string `json:"offering_id"`
	Seats      int    `json:"seats"`
	Email      string `json:"email"`
}

type reservationResponse struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	OfferingID      string `json:"offering_id"`
	Seats           int    `json:"seats"`
	TotalPriceCents int64  `json:"total_price_cents"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

type reservationDetailResponse struct {
	reservationResponse
	Offering offeringResponse `json:"offering"`
	Upcoming bool             `json:"upcoming"`
}

func NewReservationHandler(service reservation.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.DELETE("/:id", h.cancel)
}

func (h *ReservationHandler) create(c *gin.Context) {
	principalID, ok := principalFrom(c)
	if !ok {
		return
	}

	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateReservation(c.Request.Context(), reservation.CreateReservationInput{
		OfferingID:  req.OfferingID,
		PrincipalID: principalID,
		Seats:       req.Seats,
		Email:       req.Email,
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toReservationResponse(created))
}

func (h *ReservationHandler) list(c *gin.Context) {
	principalID, ok := principalFrom(c)
	if !ok {
		return
	}

	details, err := h.service.ListReservations(c.Request.Context(), principalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	scope := c.DefaultQuery("scope", "all")
	now := time.Now()
	resp := make([]reservationDetailResponse, 0, len(details))
	for i := range details {
		d := &details[i]
		upcoming := d.Upcoming(now)
		if scope == "upcoming" && !upcoming {
			continue
		}
		if scope == "past" && upcoming {
			continue
		}
		resp = append(resp, reservationDetailResponse{
			reservationResponse: toReservationResponse(&d.Reservation),
			Offering:            toOfferingResponse(&d.Offering),
			Upcoming:            upcoming,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	principalID, ok := principalFrom(c)
	if !ok {
		return
	}

	cancelled, err := h.service.CancelReservation(c.Request.Context(), c.Param("id"), principalID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"cancelled": cancelled, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

func principalFrom(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(principalHeader)
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + principalHeader + " header"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid " + principalHeader + " header"})
		return 0, false
	}
	return id, true
}

func toReservationResponse(r *domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:              r.ID,
		Code:            r.Code,
		OfferingID:      r.OfferingID,
		Seats:           r.Seats,
		TotalPriceCents: r.TotalPriceCents,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOfferingUnavailable),
		errors.Is(err, domain.ErrInsufficientCapacity),
		errors.Is(err, domain.ErrNotCancellable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
