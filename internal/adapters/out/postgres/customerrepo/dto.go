// Package customerrepo persists the Customer aggregate with GORM.
package customerrepo

import (
	"time"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO is the customers row.
type CustomerDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"type:varchar(100);not null"`
	Email      string     `gorm:"type:varchar(150);not null;uniqueIndex:customers_email_key"`
	Phone      string     `gorm:"type:varchar(20);not null"`
	NationalID string     `gorm:"type:varchar(14);not null;uniqueIndex:customers_national_id_key"`
	Address    AddressDTO `gorm:"embedded"`
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  *time.Time `gorm:"autoUpdateTime:false"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

// AddressDTO is the embedded postal address.
type AddressDTO struct {
	Street  string `gorm:"type:varchar(200)"`
	City    string `gorm:"type:varchar(100)"`
	State   string `gorm:"type:varchar(2)"`
	ZipCode string `gorm:"type:varchar(9)"`
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:         c.ID().UUID(),
		Name:       c.Name(),
		Email:      c.Email(),
		Phone:      c.Phone(),
		NationalID: c.NationalID(),
		Address: AddressDTO{
			Street:  c.Address().Street(),
			City:    c.Address().City(),
			State:   c.Address().State(),
			ZipCode: c.Address().ZipCode(),
		},
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.FromGoogleUUID(dto.ID)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(dto.Address.Street, dto.Address.City, dto.Address.State, dto.Address.ZipCode)
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(customer.RestoreParams{
		ID: id,
		Profile: customer.Profile{
			Name:       dto.Name,
			Email:      dto.Email,
			Phone:      dto.Phone,
			NationalID: dto.NationalID,
			Address:    address,
		},
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
