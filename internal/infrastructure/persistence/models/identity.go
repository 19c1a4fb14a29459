package models

import (
	"github.com/gestor/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User account entity. The email
// is unique across the whole table because login happens before any tenant
// context exists.
type UserModel struct {
	TenantAggregateModel
	Name         string              `gorm:"type:varchar(200);not null"`
	Email        string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string              `gorm:"type:varchar(200);not null"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Status:       m.Status,
	}
	m.PopulateTenantAggregateRoot(&user.TenantAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	m.Name = u.Name
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Status = u.Status
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
