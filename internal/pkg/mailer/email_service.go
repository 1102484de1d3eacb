package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendContactMessage(fromName, fromEmail, message string) error
	SendAccountDeleted(toEmail string) error
}

type emailService struct {
	dialer       *gomail.Dialer
	senderEmail  string
	contactInbox string
}

func NewEmailService(host string, port int, username, password, senderEmail, contactInbox string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:       d,
		senderEmail:  senderEmail,
		contactInbox: contactInbox,
	}
}

// SendContactMessage relays a contact-form submission to the configured
// inbox. The message is already persisted on the user record; mail is a
// best-effort copy.
func (s *emailService) SendContactMessage(fromName, fromEmail, message string) error {
	if s.contactInbox == "" {
		return fmt.Errorf("no contact inbox configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.contactInbox)
	m.SetHeader("Reply-To", fromEmail)
	m.SetHeader("Subject", fmt.Sprintf("Contact message from %s", fromName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New contact message</h2>
			<p><b>From:</b> %s &lt;%s&gt;</p>
			<p>%s</p>
		</div>
	`, fromName, fromEmail, message)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to relay contact message from %s: %v\n", fromEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Contact message relayed for %s\n", fromEmail)
	return nil
}

// SendAccountDeleted confirms account removal to the (now former) user.
func (s *emailService) SendAccountDeleted(toEmail string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your account has been deleted")

	body := `
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Account deleted</h2>
			<p>Your account and all your notes have been permanently removed.</p>
			<p>If this wasn't you, please contact us immediately.</p>
		</div>
	`

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send deletion notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Deletion notice sent to %s\n", toEmail)
	return nil
}
