// Package models holds the GORM table mappings. Domain types never carry
// gorm tags; each model converts to and from its domain type with
// ToDomain and FromDomain, and repositories work only with models.
package models
