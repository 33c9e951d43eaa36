package api

import (
	"net/http"

	reqdto "dicetrails/internal/handler/dto/request"
	resdto "dicetrails/internal/handler/dto/response"
	"dicetrails/internal/handler/middleware"
	"dicetrails/internal/usecase/commands"
	"dicetrails/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminOrderHandler struct {
	orderCommands commands.OrderCommands
	orderQueries  queries.OrderQueries
}

func NewAdminOrderHandler(orderCommands commands.OrderCommands, orderQueries queries.OrderQueries) *AdminOrderHandler {
	return &AdminOrderHandler{
		orderCommands: orderCommands,
		orderQueries:  orderQueries,
	}
}

// @Summary Update order status
// @Description Move an order along its lifecycle
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "Status update"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/orders/{id}/status [patch]
func (h *AdminOrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req reqdto.UpdateOrderStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.orderCommands.UpdateStatus(c.Request.Context(), orderID, req.Status, req.TrackingNumber); err != nil {
		respondOrderError(c, err)
		return
	}

	view, err := h.orderQueries.GetByIDSystem(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Adjust order discount
// @Description Recompute an order's totals with a different discount and record the change
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.AdjustOrderRequest true "Adjustment"
// @Success 201 {object} resdto.AdjustmentResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/orders/{id}/adjustments [post]
func (h *AdminOrderHandler) AdjustOrder(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req reqdto.AdjustOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.orderCommands.Adjust(c.Request.Context(), orderID, adminID, req)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAdjustmentView(view))
}

// @Summary List order adjustments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {array} resdto.AdjustmentResponse
// @Router /admin/orders/{id}/adjustments [get]
func (h *AdminOrderHandler) ListAdjustments(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	views, err := h.orderQueries.ListAdjustments(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	responses := make([]*resdto.AdjustmentResponse, len(views))
	for i, view := range views {
		responses[i] = resdto.FromAdjustmentView(view)
	}
	c.JSON(http.StatusOK, responses)
}
