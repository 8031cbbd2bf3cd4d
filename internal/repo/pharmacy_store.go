package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"medoka/internal/models"
)

type PharmacyStore struct{ db *gorm.DB }

func NewPharmacyStore(db *gorm.DB) *PharmacyStore { return &PharmacyStore{db: db} }

// findOwned — каждая операция начинается отсюда: выборка всегда по паре
// id+managerID, чужая аптека неотличима от несуществующей.
func (s *PharmacyStore) findOwned(ctx context.Context, id, managerID uint) (*models.Pharmacy, error) {
	var p models.Pharmacy
	err := s.db.WithContext(ctx).
		Where("id = ? AND manager_id = ?", id, managerID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type PharmacyInfoInput struct {
	CompanyName      string
	SerialNumber     int64
	RegistrationDate time.Time
}

// CreatePharmacy заводит аптеку, привязанную к менеджеру.
func (s *PharmacyStore) CreatePharmacy(ctx context.Context, managerID uint, in PharmacyInfoInput) (*models.Pharmacy, error) {
	p := models.Pharmacy{
		CompanyName:      in.CompanyName,
		SerialNumber:     in.SerialNumber,
		RegistrationDate: in.RegistrationDate,
		ManagerID:        managerID,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateInfo обновляет основные реквизиты существующей аптеки.
func (s *PharmacyStore) UpdateInfo(ctx context.Context, id, managerID uint, in PharmacyInfoInput) (*models.Pharmacy, error) {
	p, err := s.findOwned(ctx, id, managerID)
	if err != nil {
		return nil, err
	}
	p.CompanyName = in.CompanyName
	p.SerialNumber = in.SerialNumber
	p.RegistrationDate = in.RegistrationDate
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PharmacyStore) UpdateAdress(ctx context.Context, id, managerID uint, adress string) error {
	p, err := s.findOwned(ctx, id, managerID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(p).Update("adress", adress).Error
}

func (s *PharmacyStore) UpdatePhone(ctx context.Context, id, managerID uint, phone int64) error {
	p, err := s.findOwned(ctx, id, managerID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(p).Update("phone_number", phone).Error
}

func (s *PharmacyStore) UpdateAvatar(ctx context.Context, id, managerID uint, avatar string) error {
	p, err := s.findOwned(ctx, id, managerID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(p).Update("avatar", avatar).Error
}

// ReplaceHours атомарно заменяет недельное расписание аптеки.
func (s *PharmacyStore) ReplaceHours(ctx context.Context, id, managerID uint, days []models.WorkDay) error {
	p, err := s.findOwned(ctx, id, managerID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pharmacy_id = ?", p.ID).
			Delete(&models.WorkDay{}).Error; err != nil {
			return err
		}
		for i := range days {
			days[i].ID = 0
			days[i].PharmacyID = p.ID
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})
}

// ListByManager возвращает аптеки менеджера вместе с расписанием.
func (s *PharmacyStore) ListByManager(ctx context.Context, managerID uint) ([]models.Pharmacy, error) {
	var out []models.Pharmacy
	err := s.db.WithContext(ctx).
		Preload("Days").
		Where("manager_id = ?", managerID).
		Order("id").
		Find(&out).Error
	return out, err
}
