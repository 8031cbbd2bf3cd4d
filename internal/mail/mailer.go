package mail

// Mailer — исходящий почтовый транспорт. Обе реализации (SMTP и лог)
// взаимозаменяемы; выбор — по конфигу.
type Mailer interface {
	SendVerificationCode(to string, code int) error
	SendRecoveryLink(to, url string) error
}
