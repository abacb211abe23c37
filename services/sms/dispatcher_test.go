package sms

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSender struct {
	mu       sync.Mutex
	calls    int
	failures int // fail this many leading attempts
}

func (f *fakeSender) Send(_ context.Context, phone, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("gateway unavailable")
	}
	return nil
}

func (f *fakeSender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestDeliverFirstAttemptSucceeds(t *testing.T) {
	f := &fakeSender{}
	d := &Dispatcher{sender: f, backoff: time.Millisecond}

	d.deliver("09123456789", "123456")

	assert.Equal(t, 1, f.callCount())
}

func TestDeliverRetriesThenSucceeds(t *testing.T) {
	f := &fakeSender{failures: 2}
	d := &Dispatcher{sender: f, backoff: time.Millisecond}

	d.deliver("09123456789", "123456")

	assert.Equal(t, 3, f.callCount())
}

func TestDeliverGivesUpAfterMaxAttempts(t *testing.T) {
	f := &fakeSender{failures: 10}
	d := &Dispatcher{sender: f, backoff: time.Millisecond}

	d.deliver("09123456789", "123456")

	assert.Equal(t, maxAttempts, f.callCount())
}
