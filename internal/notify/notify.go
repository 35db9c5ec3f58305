package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

// Sender delivers one text message.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (s *TwilioSender) Send(_ context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}

// BookingConfirmation is the text a guest receives after booking online.
func BookingConfirmation(salonName, code string, startsAt time.Time) string {
	return fmt.Sprintf(
		"%s: your appointment on %s at %s is confirmed. Booking code: %s",
		salonName,
		startsAt.Format("02-01-2006"),
		startsAt.Format("15:04"),
		code,
	)
}

type Message struct {
	To   string
	Body string
}

// Dispatcher sends messages from a buffered queue. A full queue drops the
// message; notifications never fail a booking.
type Dispatcher struct {
	sender Sender
	log    *logger.Logger
	queue  chan Message

	once sync.Once
	done chan struct{}
}

func NewDispatcher(sender Sender, log *logger.Logger, size int) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	if size <= 0 {
		size = 50
	}
	d := &Dispatcher{
		sender: sender,
		log:    log.With("service", "NotifyDispatcher"),
		queue:  make(chan Message, size),
		done:   make(chan struct{}),
	}
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for m := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := d.sender.Send(ctx, m.To, m.Body); err != nil {
			d.log.Warn("notification failed", "error", err)
		}
		cancel()
	}
}

// Enqueue is safe on a nil Dispatcher.
func (d *Dispatcher) Enqueue(m Message) {
	if d == nil {
		return
	}
	select {
	case d.queue <- m:
	default:
		d.log.Warn("notification queue full, dropping message")
	}
}

func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() { close(d.queue) })
	<-d.done
}

// Recorder is an in-memory Sender.
type Recorder struct {
	mu   sync.Mutex
	sent []Message
}

func (r *Recorder) Send(_ context.Context, to, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Message{To: to, Body: body})
	return nil
}

func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}

var (
	_ Sender = (*TwilioSender)(nil)
	_ Sender = (*Recorder)(nil)
)
