// Package export renders list exports as spreadsheet files.
package export

import (
	"fmt"

	partnerapp "github.com/shopdash/backend/internal/application/partner"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/xuri/excelize/v2"
)

// CustomerSheet is the sheet name of the customer export
const CustomerSheet = "Customers"

// XLSXContentType is the media type of generated workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CustomerColumns are the header cells of the customer export, in order
var CustomerColumns = []string{
	"Email",
	"First Name",
	"Last Name",
	"Phone",
	"Active",
	"Date Joined",
	"Orders",
	"Note",
}

// XLSXEncoder writes customer exports as Excel workbooks
type XLSXEncoder struct{}

// NewXLSXEncoder creates an XLSXEncoder
func NewXLSXEncoder() *XLSXEncoder {
	return &XLSXEncoder{}
}

// ContentType implements partnerapp.WorkbookEncoder
func (XLSXEncoder) ContentType() string { return XLSXContentType }

// Extension implements partnerapp.WorkbookEncoder
func (XLSXEncoder) Extension() string { return ".xlsx" }

// EncodeCustomers writes a header row and one row per customer
func (XLSXEncoder) EncodeCustomers(customers []partner.Customer) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", CustomerSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(CustomerColumns))
	for i, col := range CustomerColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(CustomerSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(CustomerColumns))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(CustomerSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return nil, err
	}

	for i := range customers {
		c := &customers[i]
		row := []any{
			c.Email,
			c.FirstName,
			c.LastName,
			c.Phone(),
			c.IsActive,
			c.DateJoined.UTC(),
			c.NumberOfOrders,
			c.Note,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(CustomerSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
		dateCell, _ := excelize.CoordinatesToCellName(6, i+2)
		if err := f.SetCellStyle(CustomerSheet, dateCell, dateCell, dateStyle); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(CustomerSheet, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(CustomerSheet, "B", "G", 16); err != nil {
		return nil, err
	}
	if err := f.SetPanes(CustomerSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

var _ partnerapp.WorkbookEncoder = XLSXEncoder{}
