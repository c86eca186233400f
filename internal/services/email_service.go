package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

const (
	confirmationSubject  = "회원가입"
	passwordResetSubject = "비밀번호 재설정"
)

// EmailService delivers the templated confirmation links. A failed send is a
// soft failure for the caller; no preceding mutation is rolled back.
type EmailService interface {
	SendConfirmationEmail(email, token string) error
	SendPasswordResetEmail(email, token string) error
}

func confirmationBody(clientURL, token string) string {
	return fmt.Sprintf(`
		<p>회원가입을 끝내기 위해 아래 링크로 접속해주세요.</p>
		<a href="%s/auth/account-activate/%s">회원가입 끝내기!</a>
	`, clientURL, token)
}

func passwordResetBody(clientURL, token string) string {
	return fmt.Sprintf(`
		<p>비밀번호를 다시 설정하기 위해 아래 링크로 접속해주세요.</p>
		<a href="%s/auth/access-account/%s">비밀번호 다시 설정하기!</a>
	`, clientURL, token)
}

// wrapTemplate wraps the per-mail content into the common HTML shell.
func wrapTemplate(content string) string {
	return fmt.Sprintf(`
		<html>
			<div style="max-width: 700px; margin: auto;">
				%s
				<hr/>
				<i>&copy; Muroom</i>
			</div>
		</html>
	`, content)
}

type smtpEmailService struct {
	dialer    *gomail.Dialer
	from      string
	replyTo   string
	clientURL string
}

func NewSMTPEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, replyTo, clientURL string) EmailService {
	return &smtpEmailService{
		dialer:    gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:      fromEmail,
		replyTo:   replyTo,
		clientURL: clientURL,
	}
}

func (s *smtpEmailService) send(to, subject, content string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Reply-To", s.replyTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", wrapTemplate(content))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send %q email: %w", subject, err)
	}
	return nil
}

func (s *smtpEmailService) SendConfirmationEmail(email, token string) error {
	return s.send(email, confirmationSubject, confirmationBody(s.clientURL, token))
}

func (s *smtpEmailService) SendPasswordResetEmail(email, token string) error {
	return s.send(email, passwordResetSubject, passwordResetBody(s.clientURL, token))
}
