package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(m *gomail.Message) error {
	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendWelcome(ctx context.Context, email, name, memberNo string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to the Welfare Fund")

	body := fmt.Sprintf("Hello %s,\n\nYour membership has been registered. Your member number is %s.\n\nMonthly contributions begin this month; your account matures at the end of the probation period.\n\nWelfare Fund Office", name, memberNo)
	m.SetBody("text/plain", body)
	return s.send(m)
}

func (s *emailService) SendDisbursementApproved(ctx context.Context, email, name string, amount decimal.Decimal) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Disbursement Approved")

	body := fmt.Sprintf("Hello %s,\n\nA disbursement of KES %s has been approved and will be paid out shortly.\n\nWelfare Fund Office", name, amount.StringFixed(2))
	m.SetBody("text/plain", body)
	return s.send(m)
}
