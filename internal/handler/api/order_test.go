//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dicetrails/internal/domain/order"
	"dicetrails/internal/domain/user"
	"dicetrails/internal/handler/api"
	reqdto "dicetrails/internal/handler/dto/request"
	"dicetrails/internal/pkg/errs"
	"dicetrails/internal/usecase/commands"
	"dicetrails/internal/usecase/queries"
	"dicetrails/tests/common/builder"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// Hand-rolled fakes for the usecase interfaces.

type fakeOrderCommands struct {
	placeResult *commands.PlaceOrderResult
	placeErr    error
	updateErr   error
	cancelErr   error
	adjustView  *queries.AdjustmentView
	adjustErr   error

	gotPlaceReq  reqdto.PlaceOrderRequest
	gotAdjustReq reqdto.AdjustOrderRequest
	gotCancelID  uuid.UUID
	gotStatus    string
	gotTracking  *string
}

func (f *fakeOrderCommands) PlaceOrder(_ context.Context, req reqdto.PlaceOrderRequest, _ uuid.UUID, _ uuid.UUID) (*commands.PlaceOrderResult, error) {
	f.gotPlaceReq = req
	return f.placeResult, f.placeErr
}

func (f *fakeOrderCommands) UpdateStatus(_ context.Context, _ uuid.UUID, status string, trackingNumber *string) error {
	f.gotStatus = status
	f.gotTracking = trackingNumber
	return f.updateErr
}

func (f *fakeOrderCommands) Cancel(_ context.Context, orderID, _ uuid.UUID) error {
	f.gotCancelID = orderID
	return f.cancelErr
}

func (f *fakeOrderCommands) Adjust(_ context.Context, _, _ uuid.UUID, req reqdto.AdjustOrderRequest) (*queries.AdjustmentView, error) {
	f.gotAdjustReq = req
	return f.adjustView, f.adjustErr
}

type fakeOrderQueries struct {
	view        *queries.OrderView
	viewErr     error
	items       []*queries.OrderListItem
	adjustments []*queries.AdjustmentView
	listErr     error
}

func (f *fakeOrderQueries) GetByID(context.Context, uuid.UUID, string, uuid.UUID) (*queries.OrderView, error) {
	return f.view, f.viewErr
}

func (f *fakeOrderQueries) GetByIDSystem(context.Context, uuid.UUID) (*queries.OrderView, error) {
	return f.view, f.viewErr
}

func (f *fakeOrderQueries) ListByUser(context.Context, uuid.UUID, int) ([]*queries.OrderListItem, error) {
	return f.items, f.listErr
}

func (f *fakeOrderQueries) ListAdjustments(context.Context, uuid.UUID) ([]*queries.AdjustmentView, error) {
	return f.adjustments, f.listErr
}

// stubAuth injects the authenticated user the way RequireAuth would.
func stubAuth(userID uuid.UUID, role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

type OrderHandlerSuite struct {
	suite.Suite
	commands *fakeOrderCommands
	queries  *fakeOrderQueries
	router   *gin.Engine
	userID   uuid.UUID
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerSuite))
}

func (s *OrderHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.commands = &fakeOrderCommands{}
	s.queries = &fakeOrderQueries{}
	s.userID = uuid.New()

	handler := api.NewOrderHandler(s.commands, s.queries)
	s.router = gin.New()
	orders := s.router.Group("/api/orders", stubAuth(s.userID, user.RoleCustomer))
	orders.POST("", handler.PlaceOrder)
	orders.GET("", handler.ListOrders)
	orders.GET("/:id", handler.GetOrder)
	orders.POST("/:id/cancel", handler.CancelOrder)
}

func (s *OrderHandlerSuite) request(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func idempotencyHeader() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.NewString()}
}

// ===== TestPlaceOrder =====

func (s *OrderHandlerSuite) TestPlaceOrder_Created() {
	b := builder.NewOrderBuilder()
	s.commands.placeResult = &commands.PlaceOrderResult{Order: b.BuildView(), IsReplayed: false}

	rec := s.request(http.MethodPost, "/api/orders", b.BuildPlaceOrderRequestDTO(), idempotencyHeader())

	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), "30000001")
}

func (s *OrderHandlerSuite) TestPlaceOrder_ReplayReturnsOK() {
	b := builder.NewOrderBuilder()
	s.commands.placeResult = &commands.PlaceOrderResult{Order: b.BuildView(), IsReplayed: true}

	rec := s.request(http.MethodPost, "/api/orders", b.BuildPlaceOrderRequestDTO(), idempotencyHeader())

	s.Equal(http.StatusOK, rec.Code)
}

func (s *OrderHandlerSuite) TestPlaceOrder_MissingIdempotencyKey() {
	b := builder.NewOrderBuilder()

	rec := s.request(http.MethodPost, "/api/orders", b.BuildPlaceOrderRequestDTO(), nil)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *OrderHandlerSuite) TestPlaceOrder_MalformedIdempotencyKey() {
	b := builder.NewOrderBuilder()

	rec := s.request(http.MethodPost, "/api/orders", b.BuildPlaceOrderRequestDTO(),
		map[string]string{"Idempotency-Key": "not-a-uuid"})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *OrderHandlerSuite) TestPlaceOrder_InvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *OrderHandlerSuite) TestPlaceOrder_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"validation error", &order.ValidationError{Fields: []order.FieldError{{Field: "email", Reason: "invalid email format"}}}, http.StatusUnprocessableEntity},
		{"invalid voucher", commands.ErrVoucherInvalid, http.StatusBadRequest},
		{"insufficient stock", commands.ErrInsufficientStock, http.StatusConflict},
		{"newsletter discount used", commands.ErrNewsletterDiscountUsed, http.StatusConflict},
		{"duplicate order", commands.ErrDuplicateOrder, http.StatusConflict},
		{"request in progress", commands.ErrIdempotencyInProgress, http.StatusConflict},
		{"product not found", commands.ErrProductNotFound, http.StatusNotFound},
		{"domain validation", commands.ErrDomainValidation, http.StatusUnprocessableEntity},
		{"store unavailable", errs.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"unexpected error", errs.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.commands.placeErr = tt.err
			b := builder.NewOrderBuilder()

			rec := s.request(http.MethodPost, "/api/orders", b.BuildPlaceOrderRequestDTO(), idempotencyHeader())

			s.Equal(tt.expectCode, rec.Code)
		})
	}
}

func (s *OrderHandlerSuite) TestPlaceOrder_ValidationErrorListsFields() {
	s.commands.placeErr = &order.ValidationError{Fields: []order.FieldError{
		{Field: "email", Reason: "invalid email format"},
		{Field: "zipcode", Reason: "must be 4 to 10 digits"},
	}}
	b := builder.NewOrderBuilder()

	rec := s.request(http.MethodPost, "/api/orders", b.BuildPlaceOrderRequestDTO(), idempotencyHeader())

	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Error  string `json:"error"`
		Fields []struct {
			Field  string `json:"field"`
			Reason string `json:"reason"`
		} `json:"fields"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("Order validation failed", body.Error)
	s.Len(body.Fields, 2)
}

// ===== TestGetOrder =====

func (s *OrderHandlerSuite) TestGetOrder_Found() {
	b := builder.NewOrderBuilder()
	view := b.BuildView()
	s.queries.view = view

	rec := s.request(http.MethodGet, "/api/orders/"+view.ID.String(), nil, nil)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *OrderHandlerSuite) TestGetOrder_MissingOrder() {
	s.queries.viewErr = queries.ErrOrderNotFound

	rec := s.request(http.MethodGet, "/api/orders/"+uuid.NewString(), nil, nil)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "Order not found")
}

func (s *OrderHandlerSuite) TestGetOrder_ForbiddenMapsToNotFound() {
	s.queries.viewErr = queries.ErrForbidden

	rec := s.request(http.MethodGet, "/api/orders/"+uuid.NewString(), nil, nil)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "Order not found")
}

func (s *OrderHandlerSuite) TestGetOrder_InvalidID() {
	rec := s.request(http.MethodGet, "/api/orders/not-a-uuid", nil, nil)

	s.Equal(http.StatusBadRequest, rec.Code)
}

// ===== TestListOrders =====

func (s *OrderHandlerSuite) TestListOrders() {
	s.queries.items = []*queries.OrderListItem{
		{ID: uuid.New(), OrderNumber: "30000001", Status: "ready_to_ship", Region: "west"},
		{ID: uuid.New(), OrderNumber: "30000002", Status: "shipped", Region: "east"},
	}

	rec := s.request(http.MethodGet, "/api/orders", nil, nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "30000001")
	s.Contains(rec.Body.String(), "30000002")
}

// ===== TestCancelOrder =====

func (s *OrderHandlerSuite) TestCancelOrder_NoContent() {
	orderID := uuid.New()

	rec := s.request(http.MethodPost, "/api/orders/"+orderID.String()+"/cancel", nil, nil)

	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal(orderID, s.commands.gotCancelID)
}

func (s *OrderHandlerSuite) TestCancelOrder_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"not found", commands.ErrOrderNotFound, http.StatusNotFound},
		{"not owner hides existence", commands.ErrOrderForbidden, http.StatusNotFound},
		{"already completed", &order.InvalidTransitionError{From: order.StatusCompleted, To: order.StatusCancelled}, http.StatusConflict},
		{"concurrent update", commands.ErrStatusConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.commands.cancelErr = tt.err

			rec := s.request(http.MethodPost, "/api/orders/"+uuid.NewString()+"/cancel", nil, nil)

			s.Equal(tt.expectCode, rec.Code)
		})
	}
}
