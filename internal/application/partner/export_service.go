package partner

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/shopdash/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// exportBatchSize is the page size used while collecting export rows
const exportBatchSize = 500

// ExportService writes the filtered customer list to a workbook in object storage
type ExportService struct {
	customerRepo partner.CustomerRepository
	encoder      WorkbookEncoder
	storage      ExportStorage
	prefix       string
	maxRows      int
	now          func() time.Time
}

// NewExportService creates an ExportService. maxRows <= 0 exports everything.
func NewExportService(customerRepo partner.CustomerRepository, encoder WorkbookEncoder, storage ExportStorage, prefix string, maxRows int) *ExportService {
	if prefix == "" {
		prefix = "exports"
	}
	return &ExportService{
		customerRepo: customerRepo,
		encoder:      encoder,
		storage:      storage,
		prefix:       prefix,
		maxRows:      maxRows,
		now:          time.Now,
	}
}

// Export collects every customer matching the list filters, in list order,
// uploads the workbook and returns a download link.
func (s *ExportService) Export(ctx context.Context, principal identity.Principal, params url.Values) (*ExportResult, error) {
	variables := partner.RestrictFilterVariables(
		partner.GetFilterVariables(partner.ParseCustomerListURLFilters(params)),
		principal.Permissions,
	)
	sort := partner.ParseCustomerSort(params)

	total, err := s.customerRepo.CountForTenant(ctx, principal.TenantID, variables)
	if err != nil {
		return nil, err
	}

	var customers []partner.Customer
	for page := 1; ; page++ {
		batch, err := s.customerRepo.FindAllForTenant(ctx, principal.TenantID, partner.CustomerQuery{
			Filter:   variables,
			Sort:     sort,
			Page:     page,
			PageSize: exportBatchSize,
		})
		if err != nil {
			return nil, err
		}
		customers = append(customers, batch...)
		if s.maxRows > 0 && len(customers) >= s.maxRows {
			customers = customers[:s.maxRows]
			break
		}
		if len(batch) < exportBatchSize {
			break
		}
	}
	truncated := int64(len(customers)) < total

	body, err := s.encoder.EncodeCustomers(customers)
	if err != nil {
		return nil, fmt.Errorf("encode customer export: %w", err)
	}

	key := s.objectKey(principal)
	if err := s.storage.PutObject(ctx, key, body, s.encoder.ContentType()); err != nil {
		return nil, err
	}
	link, expiresAt, err := s.storage.PresignGetObject(ctx, key)
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Customer export created",
		zap.String("key", key),
		zap.Int("rows", len(customers)),
		zap.Bool("truncated", truncated),
	)

	return &ExportResult{
		Key:       key,
		URL:       link,
		ExpiresAt: expiresAt,
		Rows:      len(customers),
		Truncated: truncated,
	}, nil
}

func (s *ExportService) objectKey(principal identity.Principal) string {
	name := "customers-" + s.now().UTC().Format("20060102-150405") + s.encoder.Extension()
	return path.Join(s.prefix, principal.TenantID.String(), principal.UserID.String(), name)
}
