package mail

import (
	"medoka/internal/logs"
)

// LogMailer — dev-транспорт: вместо отправки пишет содержимое в лог.
// Используется, когда mail.host не задан.
type LogMailer struct{}

func (LogMailer) SendVerificationCode(to string, code int) error {
	logs.Logger.Infof("mail (dev): verification code for %s: %06d", to, code)
	return nil
}

func (LogMailer) SendRecoveryLink(to, url string) error {
	logs.Logger.Infof("mail (dev): recovery link for %s: %s", to, url)
	return nil
}
