package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendShareLink(toEmail, studentName, shareURL string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendShareLink(toEmail, studentName, shareURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s's Career Discovery Report", studentName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s has shared a career discovery report with you</h2>
			<p>View the recommended career paths, interests and strengths here:</p>
			<p><a href="%s" style="color: #4CAF50;">%s</a></p>
			<p>Anyone with this link can view the report. The link never expires.</p>
		</div>
	`, studentName, shareURL, shareURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send share link to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Share link sent to %s\n", toEmail)
	return nil
}
