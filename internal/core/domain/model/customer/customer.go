// Package customer contains the Customer aggregate: the buyer that owns orders.
package customer

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	minNameLength  = 3
	maxNameLength  = 100
	maxEmailLength = 150
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer was not built by NewCustomer or RestoreCustomer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

	phonePattern      = regexp.MustCompile(`^\(?\d{2}\)?\s?\d{4,5}-?\d{4}$`)
	nationalIDPattern = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)
)

// Customer is the aggregate root for a buyer.
//
// Email and national ID are unique across customers; uniqueness is checked by the
// command handlers against the repository, not by the aggregate itself. A customer
// that still owns orders cannot be deleted.
type Customer struct {
	id         kernel.UUID
	name       string
	email      string
	phone      string
	nationalID string
	address    kernel.Address
	createdAt  time.Time
	updatedAt  *time.Time
	guard      guard.ConstructorGuard
}

// Profile carries the editable customer attributes for NewCustomer and Update.
type Profile struct {
	Name       string
	Email      string
	Phone      string
	NationalID string
	Address    kernel.Address
}

// NewCustomer validates the profile and returns a customer stamped with createdAt.
// All validation failures are joined into one error.
func NewCustomer(id kernel.UUID, profile Profile, createdAt time.Time) (*Customer, error) {
	c := &Customer{
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.applyProfile(profile),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreParams is the persisted state of a Customer.
type RestoreParams struct {
	ID        kernel.UUID
	Profile   Profile
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// RestoreCustomer rebuilds a Customer loaded from storage.
func RestoreCustomer(p RestoreParams) (*Customer, error) {
	c := &Customer{
		createdAt: p.CreatedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}
	if p.UpdatedAt != nil {
		u := p.UpdatedAt.UTC()
		c.updatedAt = &u
	}

	if err := errors.Join(
		c.setID(p.ID),
		c.applyProfile(p.Profile),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Update replaces the profile and stamps updatedAt. On failure the customer is unchanged.
func (c *Customer) Update(profile Profile, now time.Time) error {
	next := *c
	if err := next.applyProfile(profile); err != nil {
		return err
	}

	stamp := now.UTC()
	next.updatedAt = &stamp
	*c = next
	return nil
}

// Validate fails for customers that bypassed the constructors.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID          { return c.id }
func (c *Customer) Name() string             { return c.name }
func (c *Customer) Email() string            { return c.email }
func (c *Customer) Phone() string            { return c.phone }
func (c *Customer) NationalID() string       { return c.nationalID }
func (c *Customer) Address() kernel.Address  { return c.address }
func (c *Customer) CreatedAt() time.Time     { return c.createdAt }
func (c *Customer) UpdatedAt() *time.Time    { return c.updatedAt }
func (c *Customer) IsEqual(o *Customer) bool { return o != nil && c.id.IsEqual(o.id) }

func (c *Customer) applyProfile(p Profile) error {
	return errors.Join(
		c.setName(p.Name),
		c.setEmail(p.Email),
		c.setPhone(p.Phone),
		c.setNationalID(p.NationalID),
		c.setAddress(p.Address),
	)
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", n, minNameLength, maxNameLength)
	}
	c.name = name
	return nil
}

func (c *Customer) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if len(email) > maxEmailLength {
		return errs.NewValueIsOutOfRangeError("email length", len(email), 1, maxEmailLength)
	}
	// mail.ParseAddress also accepts "Name <addr>"; only a bare address is allowed here.
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid address", email))
	}
	c.email = email
	return nil
}

func (c *Customer) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	if !phonePattern.MatchString(phone) {
		return errs.NewValueIsInvalidErrorWithCause(
			"phone", fmt.Errorf("%q does not match (XX) XXXXX-XXXX or (XX) XXXX-XXXX", phone))
	}
	c.phone = phone
	return nil
}

func (c *Customer) setNationalID(nationalID string) error {
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		return errs.NewValueIsRequiredError("national id")
	}
	if !nationalIDPattern.MatchString(nationalID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"national id", fmt.Errorf("%q does not match XXX.XXX.XXX-XX", nationalID))
	}
	c.nationalID = nationalID
	return nil
}

func (c *Customer) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}
