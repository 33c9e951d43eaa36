//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dicetrails/internal/domain/order"
	"dicetrails/internal/domain/user"
	"dicetrails/internal/handler/api"
	reqdto "dicetrails/internal/handler/dto/request"
	"dicetrails/internal/usecase/commands"
	"dicetrails/internal/usecase/queries"
	"dicetrails/tests/common/builder"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AdminOrderHandlerSuite struct {
	suite.Suite
	commands *fakeOrderCommands
	queries  *fakeOrderQueries
	router   *gin.Engine
	adminID  uuid.UUID
}

func TestAdminOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminOrderHandlerSuite))
}

func (s *AdminOrderHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.commands = &fakeOrderCommands{}
	s.queries = &fakeOrderQueries{}
	s.adminID = uuid.New()

	handler := api.NewAdminOrderHandler(s.commands, s.queries)
	s.router = gin.New()
	admin := s.router.Group("/api/admin/orders", stubAuth(s.adminID, user.RoleAdmin))
	admin.PATCH("/:id/status", handler.UpdateOrderStatus)
	admin.POST("/:id/adjustments", handler.AdjustOrder)
	admin.GET("/:id/adjustments", handler.ListAdjustments)
}

func (s *AdminOrderHandlerSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// ===== TestUpdateOrderStatus =====

func (s *AdminOrderHandlerSuite) TestUpdateOrderStatus_OK() {
	b := builder.NewOrderBuilder()
	view := b.BuildView()
	view.Status = order.StatusShipped.String()
	s.queries.view = view
	tracking := "TRK-12345"

	rec := s.request(http.MethodPatch, "/api/admin/orders/"+view.ID.String()+"/status",
		reqdto.UpdateOrderStatusRequest{Status: "shipped", TrackingNumber: &tracking})

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("shipped", s.commands.gotStatus)
	s.Require().NotNil(s.commands.gotTracking)
	s.Equal(tracking, *s.commands.gotTracking)
	s.Contains(rec.Body.String(), "shipped")
}

func (s *AdminOrderHandlerSuite) TestUpdateOrderStatus_Errors() {
	tests := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"order not found", commands.ErrOrderNotFound, http.StatusNotFound},
		{"invalid transition", &order.InvalidTransitionError{From: order.StatusCancelled, To: order.StatusShipped}, http.StatusConflict},
		{"unknown status", &order.InvalidTransitionError{To: order.Status("refunded")}, http.StatusConflict},
		{"concurrent update", commands.ErrStatusConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.commands.updateErr = tt.err

			rec := s.request(http.MethodPatch, "/api/admin/orders/"+uuid.NewString()+"/status",
				reqdto.UpdateOrderStatusRequest{Status: "shipped"})

			s.Equal(tt.expectCode, rec.Code)
		})
	}
}

func (s *AdminOrderHandlerSuite) TestUpdateOrderStatus_MissingStatus() {
	rec := s.request(http.MethodPatch, "/api/admin/orders/"+uuid.NewString()+"/status",
		map[string]any{"tracking_number": "TRK-12345"})

	s.Equal(http.StatusBadRequest, rec.Code)
}

// ===== TestAdjustOrder =====

func (s *AdminOrderHandlerSuite) TestAdjustOrder_Created() {
	orderID := uuid.New()
	s.commands.adjustView = &queries.AdjustmentView{
		ID:                 uuid.New(),
		OrderID:            orderID,
		AdjustedBy:         s.adminID,
		Reason:             "price match request",
		PreviousDiscount:   decimal.Zero,
		NewDiscount:        decimal.NewFromInt(20),
		PreviousTotal:      decimal.NewFromInt(110),
		NewTotal:           decimal.NewFromInt(90),
		DiscountKindBefore: "none",
		DiscountKindAfter:  "voucher",
		CreatedAt:          time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
	code := "SAVE20"

	rec := s.request(http.MethodPost, "/api/admin/orders/"+orderID.String()+"/adjustments",
		reqdto.AdjustOrderRequest{DiscountKind: "voucher", VoucherCode: &code, Reason: "price match request"})

	s.Equal(http.StatusCreated, rec.Code)
	s.Equal("voucher", s.commands.gotAdjustReq.DiscountKind)
	s.Contains(rec.Body.String(), "price match request")
}

func (s *AdminOrderHandlerSuite) TestAdjustOrder_Errors() {
	tests := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"order not found", commands.ErrOrderNotFound, http.StatusNotFound},
		{"invalid voucher", commands.ErrVoucherInvalid, http.StatusBadRequest},
		{"unknown discount kind", commands.ErrDomainValidation, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.commands.adjustErr = tt.err

			rec := s.request(http.MethodPost, "/api/admin/orders/"+uuid.NewString()+"/adjustments",
				reqdto.AdjustOrderRequest{DiscountKind: "none", Reason: "correction"})

			s.Equal(tt.expectCode, rec.Code)
		})
	}
}

func (s *AdminOrderHandlerSuite) TestAdjustOrder_MissingReason() {
	rec := s.request(http.MethodPost, "/api/admin/orders/"+uuid.NewString()+"/adjustments",
		map[string]any{"discount_kind": "none"})

	s.Equal(http.StatusBadRequest, rec.Code)
}

// ===== TestListAdjustments =====

func (s *AdminOrderHandlerSuite) TestListAdjustments() {
	orderID := uuid.New()
	s.queries.adjustments = []*queries.AdjustmentView{
		{ID: uuid.New(), OrderID: orderID, Reason: "price match request"},
		{ID: uuid.New(), OrderID: orderID, Reason: "voucher removed after abuse report"},
	}

	rec := s.request(http.MethodGet, "/api/admin/orders/"+orderID.String()+"/adjustments", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "price match request")
	s.Contains(rec.Body.String(), "voucher removed after abuse report")
}
