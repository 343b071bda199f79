package email

import (
	"context"
	"fmt"

	"github.com/zvrva/travelbook/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	if event.Email == "" {
		return nil
	}
	fmt.Printf("send email to %s about %s for reservation %s (%d seats)\n", event.Email, event.Type, event.ReservationCode, event.Seats)
	return nil
}
