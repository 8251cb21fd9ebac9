package notify

import (
	"context"
	"fmt"

	"ptslot/internal/booking"
	"ptslot/internal/user"
)

// Directory looks up members and the trainer.
type Directory interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
	FindFirstAdmin(ctx context.Context) (*user.User, error)
}

type Enqueuer interface {
	Enqueue(ctx context.Context, msg Message) error
}

// To addresses a message to u over whatever channels u has.
func To(u *user.User, subject, body string) Message {
	msg := Message{
		UserID:  u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Subject: subject,
		Body:    body,
	}
	if u.PushID != nil {
		msg.PushID = *u.PushID
	}
	return msg
}

// BookingNotifier tells the trainer about bookings made or cancelled by
// members.
type BookingNotifier struct {
	queue Enqueuer
	dir   Directory
}

func NewBookingNotifier(queue Enqueuer, dir Directory) *BookingNotifier {
	return &BookingNotifier{queue: queue, dir: dir}
}

func (n *BookingNotifier) BookingConfirmed(ctx context.Context, b booking.Booking) error {
	return n.toTrainer(ctx, b, "New booking", "%s booked a session on %s at %s.")
}

func (n *BookingNotifier) BookingCancelled(ctx context.Context, b booking.Booking) error {
	return n.toTrainer(ctx, b, "Booking cancelled", "The session of %s on %s at %s was cancelled.")
}

func (n *BookingNotifier) toTrainer(ctx context.Context, b booking.Booking, subject, format string) error {
	member, err := n.dir.FindByID(ctx, b.UserID)
	if err != nil {
		return fmt.Errorf("load member %d: %w", b.UserID, err)
	}

	trainer, err := n.dir.FindFirstAdmin(ctx)
	if err != nil {
		return fmt.Errorf("load trainer: %w", err)
	}

	return n.queue.Enqueue(ctx, To(trainer, subject, fmt.Sprintf(format, member.Name, b.Date, b.Time)))
}
