// Package validate — чистые проверки входных полей. Никаких побочных
// эффектов: ошибка здесь означает 400 до любого похода в БД.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
)

// Email: обязателен, синтаксис адреса, без display name.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("Email cannot be an empty field")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("Email is not valid")
	}
	return nil
}

// Password: обязателен, длина в [8, 256].
func Password(password string) error {
	switch {
	case password == "":
		return errors.New("Password cannot be an empty field")
	case len(password) < 8:
		return errors.New("Password must be at least 8 characters")
	case len(password) > 256:
		return errors.New("Password must be at most 256 characters")
	}
	return nil
}

// VerificationCode: обязателен, число. Принимает число или числовую строку
// (клиент шлёт и так, и так).
func VerificationCode(v any) (int, error) {
	n, err := Int64(v)
	if err != nil {
		return 0, errors.New("Token must be a number")
	}
	return int(n), nil
}

// ManagerInfo: все поля профиля обязательны.
func ManagerInfo(firstName, lastName string, phoneNumber any) (int64, error) {
	if strings.TrimSpace(firstName) == "" {
		return 0, errors.New("First name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		return 0, errors.New("Last name is required")
	}
	phone, err := Int64(phoneNumber)
	if err != nil {
		return 0, errors.New("Phone number is required")
	}
	return phone, nil
}

// PharmacyInfo проверяет companyName/serialNumber/registrationDate
// и возвращает приведённые значения.
func PharmacyInfo(companyName string, serialNumber any, registrationDate string) (int64, time.Time, error) {
	if strings.TrimSpace(companyName) == "" {
		return 0, time.Time{}, errors.New("The company name cannot be an empty field")
	}
	if len(companyName) < 3 {
		return 0, time.Time{}, errors.New("The company name must be more than 3 letters")
	}
	if len(companyName) > 50 {
		return 0, time.Time{}, errors.New("The company name must be less than 50 letters")
	}
	serial, err := Int64(serialNumber)
	if err != nil {
		return 0, time.Time{}, errors.New("The serial number is required")
	}
	date, err := ParseDate(registrationDate)
	if err != nil {
		return 0, time.Time{}, errors.New("The registration date is required")
	}
	return serial, date, nil
}

// Adress: 3..50 символов. Написание — как в клиентском API.
func Adress(adress string) error {
	switch {
	case strings.TrimSpace(adress) == "":
		return errors.New("The adress cannot be an empty field")
	case len(adress) < 3:
		return errors.New("The adress must be more than 3 letters")
	case len(adress) > 50:
		return errors.New("The adress must be less than 50 letters")
	}
	return nil
}

// PhoneNumber: обязателен, число.
func PhoneNumber(v any) (int64, error) {
	n, err := Int64(v)
	if err != nil {
		return 0, errors.New("The phone number is required")
	}
	return n, nil
}

// TimeOfDay: "HH:MM", 24-часовой формат.
func TimeOfDay(v string) error {
	if _, err := time.Parse("15:04", v); err != nil {
		return fmt.Errorf("invalid time of day: %q", v)
	}
	return nil
}

// Int64 приводит значение из JSON к целому: число, json.Number или
// числовая строка.
func Int64(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		if n == "" {
			return 0, errors.New("empty")
		}
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

// ParseDate принимает дату в ISO-форматах, которыми пользуется клиент.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}
