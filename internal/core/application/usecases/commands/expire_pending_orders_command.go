package commands

import (
	"errors"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
	"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
)

// ExpirePendingOrdersCommand cancels up to limit PENDING orders placed before cutoff.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time
	limit  int

	guard guard.ConstructorGuard
}

func NewExpirePendingOrdersCommand(cutoff time.Time, limit int) (ExpirePendingOrdersCommand, error) {
	if cutoff.IsZero() {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsRequiredError("cutoff")
	}
	if limit <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	return ExpirePendingOrdersCommand{
		cutoff: cutoff,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

func (c ExpirePendingOrdersCommand) Cutoff() time.Time { return c.cutoff }
func (c ExpirePendingOrdersCommand) Limit() int        { return c.limit }
