// Package pgerr turns lib/pq constraint violations into domain errors.
package pgerr

import (
	"errors"
	"strings"

	"ordering/internal/pkg/errs"

	"github.com/lib/pq"
)

const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

// uniqueFields maps unique constraint names to the field reported to callers.
var uniqueFields = map[string]string{
	"customers_email_key":           "email",
	"customers_national_id_key":     "national id",
	"order_items_order_product_key": "product id",
}

// Translate maps unique violations to ObjectAlreadyExistsError and foreign-key
// violations to InvalidStateError. value is reported as the colliding value.
// Other errors are returned unchanged.
func Translate(err error, entity string, value any) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case uniqueViolation:
		field, ok := uniqueFields[pqErr.Constraint]
		if !ok {
			field = strings.TrimSuffix(strings.TrimPrefix(pqErr.Constraint, entity+"_"), "_key")
		}
		return errs.NewObjectAlreadyExistsError(field, value)
	case foreignKeyViolation:
		return errs.NewInvalidStateError(entity, pqErr.Detail)
	default:
		return err
	}
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
