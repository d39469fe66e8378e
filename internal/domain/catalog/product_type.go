package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ProductTypeKind distinguishes regular goods from gift cards
type ProductTypeKind string

const (
	ProductTypeKindNormal   ProductTypeKind = "NORMAL"
	ProductTypeKindGiftCard ProductTypeKind = "GIFT_CARD"
)

// ProductType groups products sharing attributes and shipping rules
type ProductType struct {
	shared.TenantAggregateRoot
	Name               string
	Slug               string
	Kind               ProductTypeKind
	IsShippingRequired bool
	Weight             *valueobject.Weight
}

// ProductTypeOptions are the optional settings of a new product type
type ProductTypeOptions struct {
	// ShippingWeight makes the type shippable when set
	ShippingWeight *decimal.Decimal
	GiftCard       bool
	WeightUnit     valueobject.WeightUnit
}

// NewProductType creates a product type. A shipping weight marks it as
// requiring shipping; without one the type is not shippable and has no weight.
func NewProductType(tenantID uuid.UUID, name string, opts ProductTypeOptions) (*ProductType, error) {
	name = strings.TrimSpace(name)
	if err := validateProductTypeName(name); err != nil {
		return nil, err
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product type name must contain letters or digits")
	}

	pt := &ProductType{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Slug:                slug,
		Kind:                ProductTypeKindNormal,
	}
	if opts.GiftCard {
		pt.Kind = ProductTypeKindGiftCard
	}

	if opts.ShippingWeight != nil {
		unit := opts.WeightUnit
		if unit == "" {
			unit = valueobject.DefaultWeightUnit
		}
		weight, err := valueobject.NewWeight(*opts.ShippingWeight, unit)
		if err != nil {
			return nil, shared.NewDomainErrorWithCause("INVALID_WEIGHT", err.Error(), err)
		}
		pt.IsShippingRequired = true
		pt.Weight = &weight
	}

	pt.AddDomainEvent(NewProductTypeCreatedEvent(pt))

	return pt, nil
}

// MarkDeleted records the deletion event before the repository removes the row
func (p *ProductType) MarkDeleted() {
	p.AddDomainEvent(NewProductTypeDeletedEvent(p))
}

func validateProductTypeName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product type name cannot be empty")
	}
	if len(name) > 250 {
		return shared.NewDomainError("INVALID_NAME", "Product type name cannot exceed 250 characters")
	}
	return nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, strips accents and joins words with hyphens
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(folded), "-"), "-")
}
