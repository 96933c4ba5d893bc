package customerrepo

import (
	"context"
	"errors"

	"ordering/internal/adapters/out/postgres/pgerr"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM.
type GormCustomerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCustomerRepository creates a new GORM customer repository.
func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new customer. Email and national id collisions come back as
// ObjectAlreadyExistsError.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translate(err, dto)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites every column of an existing customer.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CustomerDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return translate(result.Error, dto)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes a customer by id.
func (r *GormCustomerRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&CustomerDTO{}, "id = ?", id.UUID())
	if result.Error != nil {
		return pgerr.Translate(result.Error, "customer", id.String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", id.String())
	}
	return nil
}

// Get retrieves a customer by ID.
func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "customer", id.String(), "id = ?", id.UUID())
}

// FindByEmail retrieves the customer holding email.
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.first(ctx, "email", email, "email = ?", email)
}

// FindByNationalID retrieves the customer holding nationalID.
func (r *GormCustomerRepository) FindByNationalID(ctx context.Context, nationalID string) (*customer.Customer, error) {
	return r.first(ctx, "national id", nationalID, "national_id = ?", nationalID)
}

func (r *GormCustomerRepository) first(
	ctx context.Context,
	param, key string,
	query string,
	args ...any,
) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}

	return toDomain(dto)
}

func translate(err error, dto CustomerDTO) error {
	if !pgerr.IsUniqueViolation(err) {
		return err
	}
	translated := pgerr.Translate(err, "customers", dto.Email)
	var exists *errs.ObjectAlreadyExistsError
	if errors.As(translated, &exists) && exists.ParamName == "national id" {
		exists.Value = dto.NationalID
	}
	return translated
}
