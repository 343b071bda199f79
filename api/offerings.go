package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/travelbook/internal/domain"
	"github.com/zvrva/travelbook/internal/service/offerings"
)

type OfferingHandler struct {
	service offerings.OfferingUseCase
}

type offeringResponse struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Category       string `json:"category"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	DepartureTime  string `json:"departure_time"`
	PriceCents     int64  `json:"price_cents"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
}

func NewOfferingHandler(service offerings.OfferingUseCase) *OfferingHandler {
	return &OfferingHandler{service: service}
}

func (h *OfferingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
}

func (h *OfferingHandler) list(c *gin.Context) {
	filter := domain.OfferingFilter{
		Category:    domain.OfferingCategory(c.Query("category")),
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
	}
	if filter.Category != "" && !filter.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		filter.Date = parsed
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]offeringResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toOfferingResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OfferingHandler) get(c *gin.Context) {
	offering, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toOfferingResponse(offering))
}

func (h *OfferingHandler) create(c *gin.Context) {
	var input offerings.CreateOfferingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offering, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toOfferingResponse(offering))
}

func toOfferingResponse(o *domain.Offering) offeringResponse {
	return offeringResponse{
		ID:             o.ID,
		Code:           o.Code,
		Category:       string(o.Category),
		Origin:         o.Origin,
		Destination:    o.Destination,
		DepartureTime:  o.DepartureTime.Format(time.RFC3339),
		PriceCents:     o.PriceCents,
		TotalSeats:     o.TotalSeats,
		AvailableSeats: o.AvailableSeats,
	}
}
