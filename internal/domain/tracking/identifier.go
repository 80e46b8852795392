package tracking

import (
	"fmt"
	"regexp"
	"strings"
)

// IdentifierKind discriminates the kinds of shipment identifiers the gateway
// accepts
type IdentifierKind string

// Supported identifier kinds
const (
	// IdentifierKindContainer is a carrier-assigned container number
	IdentifierKindContainer IdentifierKind = "container"
	// IdentifierKindBillOfLading is a bill-of-lading reference number
	IdentifierKindBillOfLading IdentifierKind = "bl"
	// IdentifierKindBooking is a carrier booking reference
	IdentifierKindBooking IdentifierKind = "booking"
	// IdentifierKindMMSI is a vessel's Maritime Mobile Service Identity
	IdentifierKindMMSI IdentifierKind = "mmsi"
)

// Identifier format patterns. Values are upper-cased before matching.
var (
	containerPattern = regexp.MustCompile(`^[A-Z]{4}[0-9]{7}$`)
	blPattern        = regexp.MustCompile(`^[A-Z0-9-]{6,30}$`)
	bookingPattern   = regexp.MustCompile(`^[A-Z0-9-]{3,30}$`)
	mmsiPattern      = regexp.MustCompile(`^[0-9]{9}$`)
)

// Identifier is a validated, normalized shipment identifier. Exactly one kind
// is populated; construct through the New*Identifier functions so that an
// Identifier in circulation is always valid.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// String returns the identifier in "kind:value" form for log lines
func (i Identifier) String() string {
	return string(i.Kind) + ":" + i.Value
}

// NewContainerIdentifier validates a container number (4 letters + 7 digits)
// and returns the normalized identifier
func NewContainerIdentifier(value string) (Identifier, error) {
	v := normalize(value)
	if !containerPattern.MatchString(v) {
		return Identifier{}, NewValidationError(fmt.Sprintf("invalid container number %q: expected 4 letters followed by 7 digits", value))
	}
	return Identifier{Kind: IdentifierKindContainer, Value: v}, nil
}

// NewBillOfLadingIdentifier validates a bill-of-lading number (6-30
// alphanumeric-with-dashes characters) and returns the normalized identifier
func NewBillOfLadingIdentifier(value string) (Identifier, error) {
	v := normalize(value)
	if !blPattern.MatchString(v) {
		return Identifier{}, NewValidationError(fmt.Sprintf("invalid bill of lading number %q: expected 6-30 alphanumeric characters", value))
	}
	return Identifier{Kind: IdentifierKindBillOfLading, Value: v}, nil
}

// NewBookingIdentifier validates a booking number (3-30 alphanumeric-with-
// dashes characters) and returns the normalized identifier
func NewBookingIdentifier(value string) (Identifier, error) {
	v := normalize(value)
	if !bookingPattern.MatchString(v) {
		return Identifier{}, NewValidationError(fmt.Sprintf("invalid booking number %q: expected 3-30 alphanumeric characters", value))
	}
	return Identifier{Kind: IdentifierKindBooking, Value: v}, nil
}

// NewMMSIIdentifier validates a vessel MMSI (9 digits) and returns the
// normalized identifier
func NewMMSIIdentifier(value string) (Identifier, error) {
	v := normalize(value)
	if !mmsiPattern.MatchString(v) {
		return Identifier{}, NewValidationError(fmt.Sprintf("invalid MMSI %q: expected 9 digits", value))
	}
	return Identifier{Kind: IdentifierKindMMSI, Value: v}, nil
}

// normalize trims surrounding whitespace and upper-cases the raw value
func normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
