package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared"
)

// MetadataKeyPhone is the metadata key the customer's phone number is stored under
const MetadataKeyPhone = "phone"

// MetadataItem is a public key/value pair attached to a customer
type MetadataItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Customer is a store customer and the aggregate root of the partner context
type Customer struct {
	shared.TenantAggregateRoot
	Email      string
	FirstName  string
	LastName   string
	IsActive   bool
	DateJoined time.Time
	Note       string
	Metadata   []MetadataItem

	// NumberOfOrders is derived from the orders table on read
	NumberOfOrders int
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NewCustomer creates a new active customer
func NewCustomer(tenantID uuid.UUID, email, firstName, lastName string) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePersonName(firstName, "First name"); err != nil {
		return nil, err
	}
	if err := validatePersonName(lastName, "Last name"); err != nil {
		return nil, err
	}

	customer := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               email,
		FirstName:           strings.TrimSpace(firstName),
		LastName:            strings.TrimSpace(lastName),
		IsActive:            true,
		Metadata:            make([]MetadataItem, 0),
	}
	customer.DateJoined = customer.CreatedAt

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// FullName returns "First Last", falling back to the email
func (c *Customer) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Email
	}
	return name
}

// SetNote replaces the staff note
func (c *Customer) SetNote(note string) {
	c.Note = note
	c.Touch()
	c.IncrementVersion()
}

// SetPhone stores the phone number in metadata. An empty phone removes it.
func (c *Customer) SetPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	c.SetMetadata(MetadataKeyPhone, phone)
	return nil
}

// Phone returns the phone number from metadata
func (c *Customer) Phone() string {
	return c.MetadataValue(MetadataKeyPhone)
}

// SetMetadata upserts a metadata item. An empty value deletes the key.
func (c *Customer) SetMetadata(key, value string) {
	items := make([]MetadataItem, 0, len(c.Metadata)+1)
	found := false
	for _, item := range c.Metadata {
		if item.Key == key {
			found = true
			if value == "" {
				continue
			}
			item.Value = value
		}
		items = append(items, item)
	}
	if !found && value != "" {
		items = append(items, MetadataItem{Key: key, Value: value})
	}
	c.Metadata = items
	c.Touch()
	c.IncrementVersion()
}

// MetadataValue returns the value stored under key, or ""
func (c *Customer) MetadataValue(key string) string {
	for _, item := range c.Metadata {
		if item.Key == key {
			return item.Value
		}
	}
	return ""
}

// Deactivate blocks the customer account
func (c *Customer) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}
	c.IsActive = false
	c.Touch()
	c.IncrementVersion()
	return nil
}

// MarkDeleted records the deletion event before the repository removes the row
func (c *Customer) MarkDeleted() {
	c.AddDomainEvent(NewCustomerDeletedEvent(c))
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 254 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePersonName(name, field string) error {
	if len(name) > 256 {
		return shared.NewDomainError("INVALID_NAME", field+" cannot exceed 256 characters")
	}
	return nil
}

var validPhone = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}
