package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendBriefingConcluded(toEmail, briefingNome string, progresso int) error
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

func (s *emailService) SendBriefingConcluded(toEmail, briefingNome string, progresso int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Briefing concluído: %s", briefingNome))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Briefing concluído</h2>
			<p>O briefing <strong>%s</strong> foi concluído com %d%%
			das perguntas respondidas.</p>
			<p>As respostas já estão disponíveis no painel do projeto.</p>
		</div>
	`, briefingNome, progresso)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send conclusion mail to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Conclusion mail sent to %s\n", toEmail)
	return nil
}
