package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingConfirmation(t *testing.T) {
	msg := BookingConfirmation("Salon Nord", "AB23CD", time.Date(2026, 7, 3, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, "Salon Nord: your appointment on 03-07-2026 at 14:30 is confirmed. Booking code: AB23CD", msg)
}

func TestDispatcher_SendsQueued(t *testing.T) {
	rec := &Recorder{}
	d := NewDispatcher(rec, nil, 4)

	d.Enqueue(Message{To: "+4512345678", Body: "hi"})
	d.Close()

	sent := rec.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "+4512345678", sent[0].To)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Enqueue(Message{To: "x"})
	d.Close()
}
