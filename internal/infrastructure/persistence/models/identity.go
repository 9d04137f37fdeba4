package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/identity"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AggregateModel
	Username     string     `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string     `gorm:"type:varchar(254);not null;uniqueIndex"`
	Phone        string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	FirstName    string     `gorm:"type:varchar(100)"`
	LastName     string     `gorm:"type:varchar(100)"`
	Gender       string     `gorm:"type:varchar(10)"`
	GSTNumber    string     `gorm:"column:gst_number;type:varchar(15)"`
	IsStaff      bool       `gorm:"not null;default:false"`
	IsActive     bool       `gorm:"not null"`
	LastLoginAt  *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *identity.Customer {
	return &identity.Customer{
		BaseAggregateRoot: m.Aggregate(),
		Username:          m.Username,
		Email:             m.Email,
		Phone:             m.Phone,
		PasswordHash:      m.PasswordHash,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Gender:            m.Gender,
		GSTNumber:         m.GSTNumber,
		IsStaff:           m.IsStaff,
		IsActive:          m.IsActive,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *identity.Customer) {
	m.fromAggregate(c.BaseAggregateRoot)
	m.Username = c.Username
	m.Email = c.Email
	m.Phone = c.Phone
	m.PasswordHash = c.PasswordHash
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Gender = c.Gender
	m.GSTNumber = c.GSTNumber
	m.IsStaff = c.IsStaff
	m.IsActive = c.IsActive
	m.LastLoginAt = c.LastLoginAt
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *identity.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// ShippingAddressModel is the persistence model for a delivery address
type ShippingAddressModel struct {
	BaseModel
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Phone          string    `gorm:"type:varchar(20);not null"`
	Pincode        string    `gorm:"type:varchar(10);not null"`
	Locality       string    `gorm:"type:varchar(200)"`
	Address        string    `gorm:"type:text;not null"`
	City           string    `gorm:"type:varchar(100);not null"`
	State          string    `gorm:"type:varchar(100);not null"`
	Landmark       string    `gorm:"type:varchar(200)"`
	AlternatePhone string    `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (ShippingAddressModel) TableName() string {
	return "shipping_addresses"
}

// ToDomain converts the persistence model to a domain ShippingAddress
func (m *ShippingAddressModel) ToDomain() *identity.ShippingAddress {
	return &identity.ShippingAddress{
		BaseEntity:     m.BaseModel.Entity(),
		CustomerID:     m.CustomerID,
		Name:           m.Name,
		Phone:          m.Phone,
		Pincode:        m.Pincode,
		Locality:       m.Locality,
		Address:        m.Address,
		City:           m.City,
		State:          m.State,
		Landmark:       m.Landmark,
		AlternatePhone: m.AlternatePhone,
	}
}

// ShippingAddressModelFromDomain creates a new persistence model from a domain ShippingAddress
func ShippingAddressModelFromDomain(a *identity.ShippingAddress) *ShippingAddressModel {
	m := &ShippingAddressModel{
		CustomerID:     a.CustomerID,
		Name:           a.Name,
		Phone:          a.Phone,
		Pincode:        a.Pincode,
		Locality:       a.Locality,
		Address:        a.Address,
		City:           a.City,
		State:          a.State,
		Landmark:       a.Landmark,
		AlternatePhone: a.AlternatePhone,
	}
	m.fromEntity(a.BaseEntity)
	return m
}

// BillingAddressModel is the persistence model for an invoice address
type BillingAddressModel struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Street     string    `gorm:"type:varchar(255);not null"`
	City       string    `gorm:"type:varchar(100);not null"`
	State      string    `gorm:"type:varchar(100)"`
	Country    string    `gorm:"type:varchar(100);not null"`
	Zip        string    `gorm:"type:varchar(20);not null"`
	IsDefault  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (BillingAddressModel) TableName() string {
	return "billing_addresses"
}

// ToDomain converts the persistence model to a domain BillingAddress
func (m *BillingAddressModel) ToDomain() *identity.BillingAddress {
	return &identity.BillingAddress{
		BaseEntity: m.BaseModel.Entity(),
		CustomerID: m.CustomerID,
		Street:     m.Street,
		City:       m.City,
		State:      m.State,
		Country:    m.Country,
		Zip:        m.Zip,
		IsDefault:  m.IsDefault,
	}
}

// BillingAddressModelFromDomain creates a new persistence model from a domain BillingAddress
func BillingAddressModelFromDomain(a *identity.BillingAddress) *BillingAddressModel {
	m := &BillingAddressModel{
		CustomerID: a.CustomerID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		Zip:        a.Zip,
		IsDefault:  a.IsDefault,
	}
	m.fromEntity(a.BaseEntity)
	return m
}
