package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ordering/internal/pkg/errs"
)

const (
	maxStreetLength = 200
	maxCityLength   = 100
)

var (
	statePattern   = regexp.MustCompile(`^[A-Z]{2}$`)
	zipCodePattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)
)

// Address is a postal address used for customers and as the shipping snapshot
// on orders. Every part is optional; parts that are present must be well formed.
//
// An order copies the customer's Address at creation time, so later changes to the
// customer do not affect orders already placed.
type Address struct {
	street  string
	city    string
	state   string
	zipCode string
}

// NewAddress trims every part and validates the non-empty ones:
//   - street up to 200 characters, city up to 100
//   - state is a two-letter upper-case code (e.g. "SP")
//   - zip code is "XXXXX-XXX" or "XXXXXXXX"
func NewAddress(street, city, state, zipCode string) (Address, error) {
	a := Address{
		street:  strings.TrimSpace(street),
		city:    strings.TrimSpace(city),
		state:   strings.TrimSpace(state),
		zipCode: strings.TrimSpace(zipCode),
	}

	if err := a.Validate(); err != nil {
		return Address{}, err
	}

	return a, nil
}

// Validate checks the format rules listed on NewAddress.
func (a Address) Validate() error {
	var errList []error

	if len(a.street) > maxStreetLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("street length", len(a.street), 0, maxStreetLength))
	}
	if len(a.city) > maxCityLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("city length", len(a.city), 0, maxCityLength))
	}
	if a.state != "" && !statePattern.MatchString(a.state) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"state", fmt.Errorf("%q is not a two-letter upper-case code", a.state)))
	}
	if a.zipCode != "" && !zipCodePattern.MatchString(a.zipCode) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"zip code", fmt.Errorf("%q does not match XXXXX-XXX", a.zipCode)))
	}

	return errors.Join(errList...)
}

func (a Address) Street() string  { return a.street }
func (a Address) City() string    { return a.city }
func (a Address) State() string   { return a.state }
func (a Address) ZipCode() string { return a.zipCode }

// IsEmpty reports whether no street was given. A shipping address without a street
// is treated as absent.
func (a Address) IsEmpty() bool {
	return a.street == ""
}
