package partner

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allPermissions = []string{"MANAGE_USERS", "MANAGE_ORDERS"}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestParseCustomerListURLFilters(t *testing.T) {
	params := url.Values{
		"joinedFrom": {"2024-01-01"},
		"joinedTo":   {""},
		"phone":      {"555"},
		"sort":       {"email"},
	}

	filters := ParseCustomerListURLFilters(params)

	assert.Equal(t, strPtr("2024-01-01"), filters.JoinedFrom)
	assert.Nil(t, filters.JoinedTo, "empty values are absent")
	assert.Nil(t, filters.NumberOfOrdersFrom)
	assert.Equal(t, strPtr("555"), filters.Phone)
	assert.Equal(t, url.Values{"joinedFrom": {"2024-01-01"}, "phone": {"555"}}, filters.Values())
}

func TestGetFilterOpts(t *testing.T) {
	t.Run("active iff at least one bound is present", func(t *testing.T) {
		cases := []struct {
			from, to *string
			active   bool
		}{
			{nil, nil, false},
			{strPtr("1"), nil, true},
			{nil, strPtr("9"), true},
			{strPtr("1"), strPtr("9"), true},
		}
		for _, c := range cases {
			opts := GetFilterOpts(CustomerListURLFilters{
				JoinedFrom:         c.from,
				JoinedTo:           c.to,
				NumberOfOrdersFrom: c.from,
				NumberOfOrdersTo:   c.to,
			})
			assert.Equal(t, c.active, opts.Joined.Active)
			assert.Equal(t, c.active, opts.NumberOfOrders.Active)
		}
	})

	t.Run("missing bounds become empty strings", func(t *testing.T) {
		opts := GetFilterOpts(CustomerListURLFilters{NumberOfOrdersTo: strPtr("4")})
		assert.Equal(t, shared.MinMax{Min: "", Max: "4"}, opts.NumberOfOrders.Value)
	})

	t.Run("phone", func(t *testing.T) {
		assert.False(t, GetFilterOpts(CustomerListURLFilters{}).Phone.Active)
		opts := GetFilterOpts(CustomerListURLFilters{Phone: strPtr("123")})
		assert.True(t, opts.Phone.Active)
		assert.Equal(t, "123", opts.Phone.Value)
	})
}

func TestGetFilterVariables(t *testing.T) {
	input := GetFilterVariables(CustomerListURLFilters{
		JoinedFrom:         strPtr("2024-01-01"),
		NumberOfOrdersFrom: strPtr("2"),
		NumberOfOrdersTo:   strPtr("ten"),
		Phone:              strPtr("555"),
		Query:              strPtr("doe"),
	})

	want := CustomerFilterInput{
		DateJoined:     &shared.GteLte[string]{Gte: strPtr("2024-01-01")},
		NumberOfOrders: &shared.GteLte[int]{Gte: intPtr(2)},
		Search:         "doe",
		Metadata:       []MetadataFilter{{Key: "phone", Value: "555"}},
	}
	if diff := cmp.Diff(want, input); diff != "" {
		t.Errorf("GetFilterVariables() mismatch (-want +got):\n%s", diff)
	}

	empty := GetFilterVariables(CustomerListURLFilters{NumberOfOrdersFrom: strPtr("x")})
	assert.Nil(t, empty.DateJoined)
	assert.Nil(t, empty.NumberOfOrders)
	assert.Nil(t, empty.Metadata)
}

func TestRestrictFilterVariables(t *testing.T) {
	input := CustomerFilterInput{NumberOfOrders: &shared.GteLte[int]{Gte: intPtr(1)}, Search: "a"}

	assert.NotNil(t, RestrictFilterVariables(input, allPermissions).NumberOfOrders)

	restricted := RestrictFilterVariables(input, []string{"MANAGE_USERS"})
	assert.Nil(t, restricted.NumberOfOrders)
	assert.Equal(t, "a", restricted.Search)
}

func TestCreateFilterStructure(t *testing.T) {
	opts := GetFilterOpts(CustomerListURLFilters{
		JoinedFrom:         strPtr("2024-01-01"),
		JoinedTo:           strPtr("2024-02-01"),
		NumberOfOrdersFrom: strPtr("3"),
		NumberOfOrdersTo:   strPtr("3"),
	})

	t.Run("all elements for a full principal", func(t *testing.T) {
		elements := CreateFilterStructure(opts, allPermissions)
		require.Len(t, elements, 3)

		assert.Equal(t, CustomerFilterKeyJoined, elements[0].Name)
		assert.Equal(t, "Join Date", elements[0].Label)
		assert.Equal(t, shared.FieldTypeDate, elements[0].Type)
		assert.True(t, elements[0].Active)
		assert.True(t, elements[0].Multiple)

		assert.Equal(t, CustomerFilterKeyNumberOfOrders, elements[1].Name)
		assert.Equal(t, shared.FieldTypeNumber, elements[1].Type)
		assert.False(t, elements[1].Multiple)
		assert.Equal(t, []string{"MANAGE_ORDERS"}, elements[1].Permissions)

		assert.Equal(t, CustomerFilterKeyPhone, elements[2].Name)
		assert.Equal(t, "Phone Number", elements[2].Label)
		assert.False(t, elements[2].Active)
	})

	t.Run("order count hidden without MANAGE_ORDERS", func(t *testing.T) {
		elements := CreateFilterStructure(opts, []string{"MANAGE_USERS"})
		require.Len(t, elements, 2)
		for _, el := range elements {
			assert.NotEqual(t, CustomerFilterKeyNumberOfOrders, el.Name)
		}
	})
}

func TestGetFilterQueryParam(t *testing.T) {
	el := shared.NewTextField(CustomerFilterKeyPhone, "Phone Number", "555")
	el.Active = true
	assert.Equal(t, url.Values{"phone": {"555"}}, GetFilterQueryParam(el))

	unknown := shared.NewTextField(CustomerFilterKey("color"), "Color", "red")
	unknown.Active = true
	assert.Empty(t, GetFilterQueryParam(unknown))
}

func TestFilterRoundTrip(t *testing.T) {
	cases := []url.Values{
		{},
		{"joinedFrom": {"2024-01-01"}},
		{"joinedTo": {"2024-12-31"}},
		{"joinedFrom": {"2024-01-01"}, "joinedTo": {"2024-12-31"}},
		{"numberOfOrdersFrom": {"5"}, "numberOfOrdersTo": {"5"}},
		{"numberOfOrdersFrom": {"1"}, "numberOfOrdersTo": {"9"}, "phone": {"+1 555"}},
	}

	for _, params := range cases {
		t.Run(params.Encode(), func(t *testing.T) {
			opts := GetFilterOpts(ParseCustomerListURLFilters(params))
			encoded := FilterStructureQuery(CreateFilterStructure(opts, allPermissions))
			decoded := GetFilterOpts(ParseCustomerListURLFilters(encoded))

			if diff := cmp.Diff(opts, decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterTabsHelpers(t *testing.T) {
	params := url.Values{"query": {"doe"}, "sort": {"name"}}
	assert.Equal(t, url.Values{"query": {"doe"}}, GetActiveFilters(params))
	assert.True(t, AreFiltersApplied(params))

	tabs := []FilterTab{{Name: "VIP"}, {Name: "New"}}
	assert.Equal(t, 3, GetFiltersCurrentTab(params, tabs))
	assert.Equal(t, 0, GetFiltersCurrentTab(url.Values{"sort": {"name"}}, tabs))
	assert.Equal(t, 2, GetFiltersCurrentTab(url.Values{"activeTab": {"2"}}, tabs))
}
