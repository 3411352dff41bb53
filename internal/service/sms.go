package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"welfare-backend/internal/domain"
)

// SMSConfig holds Africa's Talking-style gateway settings.
type SMSConfig struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	APIKey   string `yaml:"api_key"`
	SenderID string `yaml:"sender_id"`
}

type smsService struct {
	cfg    SMSConfig
	client *http.Client
}

func NewSMSService(cfg SMSConfig) SMSService {
	return &smsService{cfg: cfg, client: &http.Client{Timeout: 15 * time.Second}}
}

func (s *smsService) send(ctx context.Context, phone, message string) error {
	form := url.Values{}
	form.Set("username", s.cfg.Username)
	form.Set("to", phone)
	form.Set("message", message)
	form.Set("from", s.cfg.SenderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/version1/messaging", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("apiKey", s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *smsService) SendPaymentReceipt(ctx context.Context, phone string, amount decimal.Decimal, balance *domain.Balance) error {
	msg := fmt.Sprintf("Payment of KES %s received. Thank you.", amount.StringFixed(2))
	if balance != nil {
		msg = fmt.Sprintf("Payment of KES %s received. Due: KES %s, prepaid: KES %s.",
			amount.StringFixed(2), balance.Due.StringFixed(2), balance.Prepaid.StringFixed(2))
	}
	return s.send(ctx, phone, msg)
}

func (s *smsService) SendDueReminder(ctx context.Context, phone string, due decimal.Decimal) error {
	msg := fmt.Sprintf("Reminder: your welfare contribution balance of KES %s is due. Pay via paybill to stay in good standing.", due.StringFixed(2))
	return s.send(ctx, phone, msg)
}
