package models

import (
	"time"

	"gorm.io/gorm"
)

type Pharmacy struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyName      string    `gorm:"size:255" json:"companyName"`
	SerialNumber     int64     `json:"serialNumber"`
	RegistrationDate time.Time `json:"registrationDate"`
	Adress           string    `gorm:"size:255" json:"adress"` // орфография исторически клиентская
	PhoneNumber      int64     `json:"phoneNumber"`
	Avatar           string    `gorm:"size:1024" json:"avatar"`

	ManagerID uint      `gorm:"index;not null" json:"managerId"`
	Days      []WorkDay `gorm:"foreignKey:PharmacyID" json:"Days"`
}

// WorkDay — часы работы на день недели.
type WorkDay struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PharmacyID uint   `gorm:"index;not null" json:"pharmacyId"`
	Name       string `gorm:"size:16;not null" json:"name"` // Sunday..Saturday
	Open       bool   `json:"open"`
	StartsAt   string `gorm:"size:5" json:"startsAt"` // "HH:MM"
	EndsAt     string `gorm:"size:5" json:"endsAt"`
}
