package email

import (
	"context"
	"fmt"

	"hotelbooking/config"
	"hotelbooking/internal/kafka"
	"hotelbooking/internal/logger"

	"gopkg.in/gomail.v2"
)

type Sender struct {
	cfg config.SMTPConfig
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

// Send mails the booking event notification. Without an SMTP host the event
// is only logged, which keeps local setups working.
func (s *Sender) Send(_ context.Context, event kafka.BookingEvent) error {
	subject := fmt.Sprintf("Booking %d %s", event.BookingID, event.Type)
	body := fmt.Sprintf("Booking %d for room %d (%s - %s) is now %s.",
		event.BookingID, event.RoomID, event.StartDate, event.EndDate, event.Status)

	if s.cfg.Host == "" {
		logger.InfoLogger.WithField("subject", subject).Info(body)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.From)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	return d.DialAndSend(m)
}
