package models

import (
	"time"

	"gorm.io/gorm"
)

// Gender — перечисление как в клиентской схеме.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
)

type Manager struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email       string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string `gorm:"size:255" json:"-"` // bcrypt-хэш; пустой, пока пароль не задан
	FirstName   string `gorm:"size:255" json:"firstName"`
	LastName    string `gorm:"size:255" json:"lastName"`
	Gender      Gender `gorm:"size:16;default:Female" json:"gender"`
	PhoneNumber int64  `json:"phoneNumber"`
	Verified    bool   `gorm:"default:false" json:"verified"`
}

// VerificationToken — одноразовый код подтверждения почты.
// На менеджера живёт не больше одного: выпуск нового удаляет предыдущие.
type VerificationToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Token     int       `gorm:"not null" json:"-"`
	ManagerID uint      `gorm:"index;not null" json:"manager_id"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

// RecoveryToken — одноразовая строка для сброса пароля.
type RecoveryToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Token     string    `gorm:"index;size:32;not null" json:"-"`
	ManagerID uint      `gorm:"index;not null" json:"manager_id"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}
