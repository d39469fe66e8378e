package handler

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/shopdash/backend/internal/application/trade"
	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopdash/backend/internal/domain/trade"
	"github.com/shopdash/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderRouter(t *testing.T) (*gin.Engine, identity.Principal, *mockOrderService, *mockOrderViews) {
	t.Helper()
	principal := testPrincipal(identity.PermissionManageOrders)
	orders := new(mockOrderService)
	views := new(mockOrderViews)
	t.Cleanup(func() {
		orders.AssertExpectations(t)
		views.AssertExpectations(t)
	})

	h := NewOrderHandler(orders, views)
	router := gin.New()
	g := router.Group("/orders", withPrincipal(principal))
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.GET("/:id/prep-status", h.PrepStatus)
	return router, principal, orders, views
}

func testOrderResponse(number int) tradeapp.OrderResponse {
	total := valueobject.MustNewMoney(decimal.RequireFromString("99.90"), valueobject.USD)
	return tradeapp.OrderResponse{
		ID:            uuid.New(),
		Number:        number,
		DisplayNumber: "#" + strconv.Itoa(number),
		UserEmail:     "ann@example.com",
		Status:        trade.OrderStatusUnfulfilled,
		TotalGross:    total,
		TotalNet:      total,
	}
}

func TestOrderHandler_List(t *testing.T) {
	router, principal, orders, _ := newOrderRouter(t)
	filter := tradeapp.OrderListFilter{Customer: "ann@example.com", Page: 1, PageSize: 2}
	paged := shared.NewPaginated([]tradeapp.OrderResponse{testOrderResponse(2), testOrderResponse(1)}, 3, 1, 2)
	orders.On("List", mock.Anything, principal.TenantID, filter).Return(&paged, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?customer=ann%40example.com&page=1&page_size=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(3), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)

	var items []tradeapp.OrderResponse
	decodeData(t, w, &items)
	require.Len(t, items, 2)
	assert.Equal(t, "#2", items[0].DisplayNumber)
}

func TestOrderHandler_List_InvalidPageSize(t *testing.T) {
	router, _, _, _ := newOrderRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?page_size=500", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
}

func TestOrderHandler_GetByID(t *testing.T) {
	router, principal, orders, _ := newOrderRouter(t)
	order := testOrderResponse(7)
	orders.On("GetByID", mock.Anything, principal.TenantID, order.ID).Return(&order, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/"+order.ID.String(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got tradeapp.OrderResponse
	decodeData(t, w, &got)
	assert.Equal(t, 7, got.Number)
	assert.Equal(t, "99.90 USD", got.TotalGross.String())
}

func TestOrderHandler_PrepStatus(t *testing.T) {
	tests := []struct {
		name         string
		view         *tradeapp.PrepStatusView
		err          error
		expectedCode int
	}{
		{
			name: "success",
			view: &tradeapp.PrepStatusView{
				Header:      tradeapp.PrepStatusHeader,
				State:       tradeapp.PrepStatusSuccess,
				OrderStatus: "packed",
				Pill:        &tradeapp.Pill{Color: trade.PillColorInfo, Label: "packed"},
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "fetch failed is still 200",
			view: &tradeapp.PrepStatusView{
				Header:  tradeapp.PrepStatusHeader,
				State:   tradeapp.PrepStatusError,
				Message: tradeapp.PrepStatusFailedText,
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "unknown order",
			err:          shared.ErrNotFound,
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, principal, _, views := newOrderRouter(t)
			id := uuid.New()
			if tt.err != nil {
				views.On("PrepStatus", mock.Anything, principal.TenantID, id).Return(nil, tt.err)
			} else {
				views.On("PrepStatus", mock.Anything, principal.TenantID, id).Return(tt.view, nil)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/"+id.String()+"/prep-status", nil))

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.view == nil {
				return
			}
			var got tradeapp.PrepStatusView
			decodeData(t, w, &got)
			assert.Equal(t, *tt.view, got)
		})
	}
}
