package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/shopdash/backend/internal/application/partner"
	tradeapp "github.com/shopdash/backend/internal/application/trade"
	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopdash/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type customerHandlerFixture struct {
	principal identity.Principal
	customers *mockCustomerService
	tabs      *mockFilterTabService
	exporter  *mockCustomerExporter
	views     *mockOrderViews
	router    *gin.Engine
}

func newCustomerHandlerFixture(t *testing.T) *customerHandlerFixture {
	t.Helper()
	f := &customerHandlerFixture{
		principal: testPrincipal(identity.PermissionManageUsers),
		customers: new(mockCustomerService),
		tabs:      new(mockFilterTabService),
		exporter:  new(mockCustomerExporter),
		views:     new(mockOrderViews),
	}
	t.Cleanup(func() {
		f.customers.AssertExpectations(t)
		f.tabs.AssertExpectations(t)
		f.exporter.AssertExpectations(t)
		f.views.AssertExpectations(t)
	})

	h := NewCustomerHandler(f.customers, f.tabs, f.exporter, f.views)
	f.router = gin.New()
	g := f.router.Group("/customers", withPrincipal(f.principal))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/filters", h.FilterPanel)
	g.GET("/sort", h.Sort)
	g.GET("/filter-tabs", h.GetFilterTabs)
	g.POST("/filter-tabs", h.SaveFilterTab)
	g.DELETE("/filter-tabs/:index", h.DeleteFilterTab)
	g.POST("/export", h.Export)
	g.GET("/:id", h.GetByID)
	g.GET("/:id/details", h.Details)
	g.GET("/:id/orders", h.Orders)
	g.DELETE("/:id", h.Delete)
	return f
}

func (f *customerHandlerFixture) serve(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestCustomerHandler_List(t *testing.T) {
	f := newCustomerHandlerFixture(t)
	params := url.Values{"query": {"ann"}, "sort": {"email"}, "page": {"2"}}

	f.customers.On("List", mock.Anything, f.principal, params).Return(&partnerapp.CustomerListResult{
		Items:          []partnerapp.CustomerResponse{{ID: uuid.New(), Email: "ann@example.com"}},
		Total:          21,
		Page:           2,
		PageSize:       20,
		TotalPages:     2,
		Sort:           partnerapp.SortState{Field: "email", Asc: true},
		FiltersApplied: true,
		CurrentTab:     1,
	}, nil)

	w := f.serve(http.MethodGet, "/customers?"+params.Encode(), "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(21), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)

	var result partnerapp.CustomerListResult
	decodeData(t, w, &result)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "ann@example.com", result.Items[0].Email)
	assert.True(t, result.FiltersApplied)
	assert.Equal(t, 1, result.CurrentTab)
}

func TestCustomerHandler_List_RequiresPrincipal(t *testing.T) {
	h := NewCustomerHandler(new(mockCustomerService), nil, nil, nil)
	router := gin.New()
	router.GET("/customers", h.List)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCustomerHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		req := partnerapp.CreateCustomerRequest{Email: "new@example.com", FirstName: "New"}
		f.customers.On("Create", mock.Anything, f.principal.TenantID, req).
			Return(&partnerapp.CustomerResponse{ID: uuid.New(), Email: req.Email, FirstName: "New"}, nil)

		w := f.serve(http.MethodPost, "/customers", `{"email":"new@example.com","first_name":"New"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		var created partnerapp.CustomerResponse
		decodeData(t, w, &created)
		assert.Equal(t, "new@example.com", created.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)

		w := f.serve(http.MethodPost, "/customers", `{"email":"not-an-email"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "email", resp.Error.Details[0].Field)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		f.customers.On("Create", mock.Anything, f.principal.TenantID, mock.Anything).
			Return(nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists"))

		w := f.serve(http.MethodPost, "/customers", `{"email":"dup@example.com"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, decodeResponse(t, w).Error.Code)
	})
}

func TestCustomerHandler_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)

		w := f.serve(http.MethodGet, "/customers/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		id := uuid.New()
		f.customers.On("GetByID", mock.Anything, f.principal.TenantID, id).Return(nil, shared.ErrNotFound)

		w := f.serve(http.MethodGet, "/customers/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, decodeResponse(t, w).Error.Code)
	})

	t.Run("found", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		id := uuid.New()
		f.customers.On("GetByID", mock.Anything, f.principal.TenantID, id).
			Return(&partnerapp.CustomerResponse{ID: id, Email: "a@example.com"}, nil)

		w := f.serve(http.MethodGet, "/customers/"+id.String(), "")

		assert.Equal(t, http.StatusOK, w.Code)
		var customer partnerapp.CustomerResponse
		decodeData(t, w, &customer)
		assert.Equal(t, id, customer.ID)
	})
}

func TestCustomerHandler_Details(t *testing.T) {
	f := newCustomerHandlerFixture(t)
	id := uuid.New()
	f.customers.On("Details", mock.Anything, f.principal.TenantID, id).Return(&partnerapp.CustomerDetailsResponse{
		Customer:    partnerapp.CustomerResponse{ID: id, Email: "a@example.com"},
		ViewAllHref: "/orders?customer=a%40example.com",
		TotalOrders: 7,
	}, nil)

	w := f.serve(http.MethodGet, "/customers/"+id.String()+"/details", "")

	require.Equal(t, http.StatusOK, w.Code)
	var details partnerapp.CustomerDetailsResponse
	decodeData(t, w, &details)
	assert.Equal(t, int64(7), details.TotalOrders)
	assert.Equal(t, "/orders?customer=a%40example.com", details.ViewAllHref)
}

func TestCustomerHandler_Delete(t *testing.T) {
	f := newCustomerHandlerFixture(t)
	id := uuid.New()
	f.customers.On("Delete", mock.Anything, f.principal.TenantID, id).Return(nil)

	w := f.serve(http.MethodDelete, "/customers/"+id.String(), "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCustomerHandler_Orders(t *testing.T) {
	f := newCustomerHandlerFixture(t)
	id := uuid.New()
	orderID := uuid.New()
	f.views.On("CustomerOrders", mock.Anything, f.principal.TenantID, id).Return(&tradeapp.CustomerOrdersCard{
		Title:        tradeapp.RecentOrdersTitle,
		ViewAllLabel: tradeapp.ViewAllOrdersLabel,
		ViewAllHref:  "/orders?customer=a%40example.com",
		Rows: []tradeapp.CustomerOrderRow{{
			ID:         orderID,
			Number:     "#12",
			Created:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			TotalGross: valueobject.MustNewMoney(decimal.NewFromInt(25), valueobject.USD),
			Href:       tradeapp.OrderHref(orderID, "/customers/"+id.String()),
		}},
	}, nil)

	w := f.serve(http.MethodGet, "/customers/"+id.String()+"/orders", "")

	require.Equal(t, http.StatusOK, w.Code)
	var card tradeapp.CustomerOrdersCard
	decodeData(t, w, &card)
	assert.Equal(t, "Recent Orders", card.Title)
	require.Len(t, card.Rows, 1)
	assert.Equal(t, "#12", card.Rows[0].Number)
	assert.True(t, decimal.NewFromInt(25).Equal(card.Rows[0].TotalGross.Amount()))
	assert.Equal(t, "/orders/"+orderID.String()+"?back=/customers/"+id.String(), card.Rows[0].Href)
}

func TestCustomerHandler_FilterPanel(t *testing.T) {
	f := newCustomerHandlerFixture(t)
	params := url.Values{"joinedFrom": {"2024-01-01"}}
	f.customers.On("FilterPanel", f.principal, params).
		Return(partnerapp.FilterPanelResponse{Query: "joinedFrom=2024-01-01"})

	w := f.serve(http.MethodGet, "/customers/filters?"+params.Encode(), "")

	require.Equal(t, http.StatusOK, w.Code)
	var panel partnerapp.FilterPanelResponse
	decodeData(t, w, &panel)
	assert.Equal(t, "joinedFrom=2024-01-01", panel.Query)
}

func TestCustomerHandler_Sort(t *testing.T) {
	t.Run("known field", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		f.customers.On("SortURL", url.Values{"query": {"ann"}}, "email").
			Return(partnerapp.SortNavigation{URL: "/customers?asc=true&query=ann&sort=email", Replace: true}, true)

		w := f.serve(http.MethodGet, "/customers/sort?field=email&query=ann", "")

		require.Equal(t, http.StatusOK, w.Code)
		var nav partnerapp.SortNavigation
		decodeData(t, w, &nav)
		assert.Equal(t, "/customers?asc=true&query=ann&sort=email", nav.URL)
		assert.True(t, nav.Replace)
	})

	t.Run("unknown field", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		f.customers.On("SortURL", url.Values{}, "rank").Return(partnerapp.SortNavigation{}, false)

		w := f.serve(http.MethodGet, "/customers/sort?field=rank", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})
}

func TestCustomerHandler_FilterTabs(t *testing.T) {
	tabs := []partnerapp.FilterTabSummary{
		{Index: 1, Name: "Big spenders", Data: "numberOfOrdersFrom=10"},
	}

	t.Run("get", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		f.tabs.On("GetFilterTabs", mock.Anything, f.principal).Return(tabs, nil)

		w := f.serve(http.MethodGet, "/customers/filter-tabs", "")

		require.Equal(t, http.StatusOK, w.Code)
		var got []partnerapp.FilterTabSummary
		decodeData(t, w, &got)
		assert.Equal(t, tabs, got)
	})

	t.Run("save", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		req := partnerapp.SaveFilterTabRequest{Name: "Big spenders", Data: "numberOfOrdersFrom=10"}
		f.tabs.On("SaveFilterTab", mock.Anything, f.principal, req).Return(tabs, nil)

		w := f.serve(http.MethodPost, "/customers/filter-tabs", `{"name":"Big spenders","data":"numberOfOrdersFrom=10"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("save without name", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)

		w := f.serve(http.MethodPost, "/customers/filter-tabs", `{"data":"query=a"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("save undecodable data", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		f.tabs.On("SaveFilterTab", mock.Anything, f.principal, mock.Anything).
			Return(nil, shared.NewDomainError("INVALID_TAB_DATA", "Tab data is not a query string"))

		w := f.serve(http.MethodPost, "/customers/filter-tabs", `{"name":"x","data":"%zz"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidTabData, decodeResponse(t, w).Error.Code)
	})

	t.Run("delete", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		f.tabs.On("DeleteFilterTab", mock.Anything, f.principal, 1).Return([]partnerapp.FilterTabSummary{}, nil)

		w := f.serve(http.MethodDelete, "/customers/filter-tabs/1", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete with bad index", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)

		w := f.serve(http.MethodDelete, "/customers/filter-tabs/first", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCustomerHandler_Export(t *testing.T) {
	t.Run("exported", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		params := url.Values{"query": {"ann"}}
		f.exporter.On("Export", mock.Anything, f.principal, params).Return(&partnerapp.ExportResult{
			Key:  "exports/t/u/customers-20240301-100000.xlsx",
			URL:  "https://storage.example.com/presigned",
			Rows: 3,
		}, nil)

		w := f.serve(http.MethodPost, "/customers/export?"+params.Encode(), "")

		require.Equal(t, http.StatusOK, w.Code)
		var result partnerapp.ExportResult
		decodeData(t, w, &result)
		assert.Equal(t, 3, result.Rows)
		assert.Equal(t, "https://storage.example.com/presigned", result.URL)
	})

	t.Run("storage unavailable", func(t *testing.T) {
		f := newCustomerHandlerFixture(t)
		f.exporter.On("Export", mock.Anything, f.principal, url.Values{}).Return(nil, shared.ErrUpstreamUnavailable)

		w := f.serve(http.MethodPost, "/customers/export", "")

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
