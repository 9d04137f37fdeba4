package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/renztrending/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// Roles carried in access tokens
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
)

// Gender values accepted on a profile
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

var (
	// GSTINPattern matches an Indian GST identification number
	GSTINPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)
	// PhonePattern matches a phone number with an optional leading +
	PhonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.@]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterPattern   = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
)

// Customer is a registered shopper or staff member
type Customer struct {
	shared.BaseAggregateRoot
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	FirstName    string
	LastName     string
	Gender       string
	GSTNumber    string
	IsStaff      bool
	IsActive     bool
	LastLoginAt  *time.Time
}

// NewCustomer registers a customer with a hashed password
func NewCustomer(username, email, phone, password string) (*Customer, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	phone = NormalizePhone(phone)
	if !PhonePattern.MatchString(phone) {
		return nil, shared.NewValidationError("Invalid phone number")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		Phone:             phone,
		PasswordHash:      hash,
		IsActive:          true,
	}
	c.AddDomainEvent(NewCustomerRegisteredEvent(c))
	return c, nil
}

// UpdateProfile sets the personal details shown on the account page
func (c *Customer) UpdateProfile(firstName, lastName, gender string) error {
	if len(firstName) > 150 || len(lastName) > 150 {
		return shared.NewValidationError("Names cannot exceed 150 characters")
	}
	if gender != "" && gender != GenderMale && gender != GenderFemale {
		return shared.NewValidationError("Gender must be Male or Female")
	}
	c.FirstName = strings.TrimSpace(firstName)
	c.LastName = strings.TrimSpace(lastName)
	c.Gender = gender
	c.Touch()
	return nil
}

// SetGSTNumber sets or clears the GSTIN; a GSTIN makes the customer a wholesale buyer
func (c *Customer) SetGSTNumber(gst string) error {
	gst = strings.ToUpper(strings.TrimSpace(gst))
	if gst != "" && !GSTINPattern.MatchString(gst) {
		return shared.NewValidationError("Enter a valid GST number")
	}
	c.GSTNumber = gst
	c.Touch()
	return nil
}

// Wholesale reports whether the customer buys at wholesale terms
func (c *Customer) Wholesale() bool {
	return c.GSTNumber != ""
}

// Role returns the token role for the customer
func (c *Customer) Role() string {
	if c.IsStaff {
		return RoleStaff
	}
	return RoleCustomer
}

// FullName joins first and last names, falling back to the username
func (c *Customer) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Username
	}
	return name
}

// VerifyPassword checks a plaintext password against the stored hash
func (c *Customer) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the password after checking the current one
func (c *Customer) ChangePassword(oldPassword, newPassword string) error {
	if !c.VerifyPassword(oldPassword) {
		return shared.NewDomainError(shared.CodeUnauthorized, "Current password is incorrect")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	c.PasswordHash = hash
	c.Touch()
	return nil
}

// RecordLogin stamps a successful login
func (c *Customer) RecordLogin() {
	now := time.Now()
	c.LastLoginAt = &now
	c.Touch()
}

// PromoteToStaff grants access to the admin surface
func (c *Customer) PromoteToStaff() {
	c.IsStaff = true
	c.Touch()
}

// Deactivate blocks future logins
func (c *Customer) Deactivate() {
	c.IsActive = false
	c.Touch()
}

// NormalizePhone strips spaces and dashes from a phone number
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewValidationError("Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewValidationError("Username must be at least 3 characters")
	}
	if len(username) > 150 {
		return shared.NewValidationError("Username cannot exceed 150 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewValidationError("Username can only contain letters, numbers, and the characters @ . _ -")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 254 {
		return shared.NewValidationError("Email cannot exceed 254 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewValidationError("Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewValidationError("Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewValidationError("Password cannot exceed 72 characters")
	}
	if !letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return shared.NewValidationError("Password must contain at least one letter and one number")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
