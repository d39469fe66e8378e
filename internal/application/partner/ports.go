package partner

import (
	"context"
	"time"

	"github.com/shopdash/backend/internal/domain/partner"
)

// ExportStorage stores generated export files and links to them
type ExportStorage interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	PresignGetObject(ctx context.Context, key string) (string, time.Time, error)
}

// WorkbookEncoder renders customers into a spreadsheet file
type WorkbookEncoder interface {
	EncodeCustomers(customers []partner.Customer) ([]byte, error)
	ContentType() string
	Extension() string
}

// FilterUsageRecorder counts which customer list filters are in use
type FilterUsageRecorder interface {
	RecordCustomerListFilters(ctx context.Context, keys []string)
}

type nopFilterUsageRecorder struct{}

func (nopFilterUsageRecorder) RecordCustomerListFilters(context.Context, []string) {}
