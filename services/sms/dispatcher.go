package sms

import (
	"context"
	"log"
	"time"
)

const (
	maxAttempts  = 3
	retryBackoff = 60 * time.Second
)

// Dispatcher hands codes to a Sender asynchronously. Callers fire and
// forget: delivery failures are retried a bounded number of times and then
// dropped with a log line, never surfaced to the caller.
type Dispatcher struct {
	sender  Sender
	backoff time.Duration
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender, backoff: retryBackoff}
}

// Dispatch schedules an asynchronous delivery attempt and returns
// immediately.
func (d *Dispatcher) Dispatch(phone, code string) {
	go d.deliver(phone, code)
}

func (d *Dispatcher) deliver(phone, code string) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err := d.sender.Send(ctx, phone, code)
		cancel()

		if err == nil {
			return
		}
		log.Printf("sms: delivery attempt %d/%d for %s failed: %v", attempt, maxAttempts, phone, err)
		if attempt < maxAttempts {
			time.Sleep(d.backoff)
		}
	}
	log.Printf("sms: giving up on delivery to %s", phone)
}
