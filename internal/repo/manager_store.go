package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"medoka/internal/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrEmailTaken   = errors.New("email already exist")
	ErrTokenInvalid = errors.New("invalid token")
)

// Сроки жизни одноразовых токенов (проверяются при потреблении).
const (
	VerificationTTL = 15 * time.Minute
	RecoveryTTL     = time.Hour
)

type ManagerStore struct{ db *gorm.DB }

func NewManagerStore(db *gorm.DB) *ManagerStore { return &ManagerStore{db: db} }

// -------- Менеджеры --------

// CreateManager заводит запись только с почтой; остальное заполняется позже.
func (s *ManagerStore) CreateManager(ctx context.Context, email string) (*models.Manager, error) {
	var existing models.Manager
	err := s.db.WithContext(ctx).Where(&models.Manager{Email: email}).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m := models.Manager{Email: email, Gender: models.GenderFemale}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ManagerStore) GetByEmail(ctx context.Context, email string) (*models.Manager, error) {
	var m models.Manager
	err := s.db.WithContext(ctx).Where(&models.Manager{Email: email}).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ManagerStore) GetByID(ctx context.Context, id uint) (*models.Manager, error) {
	var m models.Manager
	err := s.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SetPassword сохраняет уже захэшированный пароль.
func (s *ManagerStore) SetPassword(ctx context.Context, managerID uint, hash string) error {
	res := s.db.WithContext(ctx).Model(&models.Manager{}).
		Where("id = ?", managerID).
		Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type ProfileInput struct {
	FirstName   string
	LastName    string
	Gender      models.Gender
	PhoneNumber int64
}

// UpdateProfile обновляет поля профиля и возвращает свежую запись
// (для перевыпуска сессии).
func (s *ManagerStore) UpdateProfile(ctx context.Context, managerID uint, in ProfileInput) (*models.Manager, error) {
	res := s.db.WithContext(ctx).Model(&models.Manager{}).
		Where("id = ?", managerID).
		Updates(map[string]any{
			"first_name":   in.FirstName,
			"last_name":    in.LastName,
			"gender":       in.Gender,
			"phone_number": in.PhoneNumber,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, managerID)
}

// -------- Токены подтверждения почты --------

// IssueVerification сохраняет код; предыдущие коды менеджера удаляются —
// действующий код всегда один.
func (s *ManagerStore) IssueVerification(ctx context.Context, managerID uint, code int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("manager_id = ?", managerID).
			Delete(&models.VerificationToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.VerificationToken{
			Token:     code,
			ManagerID: managerID,
			ExpiresAt: time.Now().Add(VerificationTTL),
		}).Error
	})
}

// ConsumeVerification проверяет код и помечает менеджера подтверждённым.
// Обновление идёт по id менеджера, не по id строки токена: проверка A
// никогда не трогает B. Возвращает менеджера для выпуска сессии.
func (s *ManagerStore) ConsumeVerification(ctx context.Context, managerID uint, code int) (*models.Manager, error) {
	var m models.Manager
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vt models.VerificationToken
		err := tx.Where("manager_id = ? AND token = ?", managerID, code).First(&vt).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenInvalid
		}
		if err != nil {
			return err
		}
		if time.Now().After(vt.ExpiresAt) {
			// просроченный код больше не нужен
			_ = tx.Delete(&models.VerificationToken{}, vt.ID).Error
			return ErrTokenInvalid
		}
		if err := tx.Model(&models.Manager{}).
			Where("id = ?", managerID).
			Update("verified", true).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.VerificationToken{}, vt.ID).Error; err != nil {
			return err
		}
		return tx.First(&m, managerID).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// -------- Токены восстановления --------

// IssueRecovery сохраняет токен сброса пароля, затирая предыдущие.
func (s *ManagerStore) IssueRecovery(ctx context.Context, managerID uint, token string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("manager_id = ?", managerID).
			Delete(&models.RecoveryToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.RecoveryToken{
			Token:     token,
			ManagerID: managerID,
			ExpiresAt: time.Now().Add(RecoveryTTL),
		}).Error
	})
}

// ConsumeRecovery находит токен, ставит новый хэш пароля и удаляет токен.
// Повторное потребление того же токена — ErrNotFound.
func (s *ManagerStore) ConsumeRecovery(ctx context.Context, token, passwordHash string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rt models.RecoveryToken
		err := tx.Where("token = ?", token).First(&rt).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if time.Now().After(rt.ExpiresAt) {
			_ = tx.Delete(&models.RecoveryToken{}, rt.ID).Error
			return ErrNotFound
		}
		if err := tx.Model(&models.Manager{}).
			Where("id = ?", rt.ManagerID).
			Update("password", passwordHash).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RecoveryToken{}, rt.ID).Error
	})
}
