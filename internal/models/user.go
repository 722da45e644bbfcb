package models

import "gorm.io/gorm"

// User is an account of the service. Password is stored as given.
type User struct {
	ID               int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name             string      `json:"name" gorm:"type:varchar(100);not null"`
	Surname          string      `json:"surname" gorm:"type:varchar(100);not null"`
	Email            string      `json:"email" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,email,max=255"`
	Password         string      `json:"password,omitempty" gorm:"type:varchar(255);not null" validate:"required"`
	BirthDate        Date        `json:"birthDate" gorm:"not null"`
	RegistrationDate Date        `json:"registrationDate" gorm:"not null"`
	AccessLevel      AccessLevel `json:"accessLevel" gorm:"type:varchar(20);not null" validate:"omitempty,oneof=USER ADMIN SUPER_ADMIN"`
}

// BeforeSave fills the entity defaults for fields the caller left unset.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.BirthDate.IsZero() {
		u.BirthDate = Today()
	}
	if u.RegistrationDate.IsZero() {
		u.RegistrationDate = Today()
	}
	if u.AccessLevel == "" {
		u.AccessLevel = AccessLevelUser
	}
	return nil
}

func (u *User) GetID() int64 {
	return u.ID
}
