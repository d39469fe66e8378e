package trade

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PillColor is the color of a status pill
type PillColor string

const (
	PillColorError   PillColor = "error"
	PillColorSuccess PillColor = "success"
	PillColorWarning PillColor = "warning"
	PillColorInfo    PillColor = "info"
)

// PaymentStatus is a charge status ready for display
type PaymentStatus struct {
	Status    *PillColor `json:"status"`
	Localized string     `json:"localized"`
}

var paymentStatuses = map[ChargeStatus]struct {
	label string
	color PillColor
}{
	ChargeStatusNotCharged:        {"Unpaid", PillColorError},
	ChargeStatusPartiallyCharged:  {"Partially paid", PillColorError},
	ChargeStatusFullyCharged:      {"Fully paid", PillColorSuccess},
	ChargeStatusPartiallyRefunded: {"Partially refunded", PillColorError},
	ChargeStatusFullyRefunded:     {"Fully refunded", PillColorSuccess},
	ChargeStatusPending:           {"Pending", PillColorWarning},
	ChargeStatusRefused:           {"Refused", PillColorError},
	ChargeStatusCancelled:         {"Cancelled", PillColorError},
}

// TransformPaymentStatus maps a charge status to its label and pill color.
// Unknown statuses are title-cased and shown as errors; an empty status has no pill.
func TransformPaymentStatus(status ChargeStatus) PaymentStatus {
	if status == "" {
		return PaymentStatus{}
	}
	if known, ok := paymentStatuses[status]; ok {
		color := known.color
		return PaymentStatus{Status: &color, Localized: known.label}
	}
	color := PillColorError
	label := cases.Title(language.English).String(strings.ToLower(strings.ReplaceAll(string(status), "_", " ")))
	return PaymentStatus{Status: &color, Localized: label}
}
