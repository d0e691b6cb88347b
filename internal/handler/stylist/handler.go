package stylist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/salon-api/internal/handler"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/service/stylist"
	"github.com/jwalitptl/salon-api/pkg/httputil"
)

type Handler struct {
	service *stylist.Service
}

func NewHandler(service *stylist.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	stylists := r.Group("/stylists")
	{
		stylists.GET("", h.ListStylists)
		stylists.POST("", h.CreateStylist)
		stylists.GET("/:id", h.GetStylist)
		stylists.PUT("/:id", h.UpdateStylist)
		stylists.DELETE("/:id", h.DeleteStylist)
	}
}

func (h *Handler) ListStylists(c *gin.Context) {
	items, err := h.service.ListStylists(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetStylist(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	item, err := h.service.GetStylist(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateStylist(c *gin.Context) {
	var req model.StylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	item, err := h.service.CreateStylist(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Header("Location", handler.Location(c, item.ID))
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateStylist(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.StylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	if err := h.service.UpdateStylist(c.Request.Context(), id, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteStylist(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteStylist(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
