package reminder

import (
	"context"
	"fmt"
	"time"

	"ptslot/internal/availability"
	"ptslot/internal/booking"
	"ptslot/internal/logger"
	"ptslot/internal/notify"
	"ptslot/internal/user"
)

type Bookings interface {
	GetBookingsByDate(ctx context.Context, date string) ([]booking.BookingWithMember, error)
}

type Deliverer interface {
	Deliver(ctx context.Context, msg notify.Message) (string, error)
}

// Report summarises one run. Total counts live bookings for the day.
type Report struct {
	Date       string `json:"date"`
	Total      int    `json:"total"`
	Sent       int    `json:"sent"`
	Failed     int    `json:"failed"`
	ReportSent bool   `json:"report_sent"`
}

func (r Report) String() string {
	return fmt.Sprintf("%d of %d members reminded today (failed %d).", r.Sent, r.Total, r.Failed)
}

// Reminder notifies every member booked for today and then reports the
// outcome to the trainer.
type Reminder struct {
	bookings Bookings
	dir      notify.Directory
	out      Deliverer
	loc      *time.Location
	now      func() time.Time
}

func New(bookings Bookings, dir notify.Directory, out Deliverer, loc *time.Location) *Reminder {
	return &Reminder{
		bookings: bookings,
		dir:      dir,
		out:      out,
		loc:      loc,
		now:      time.Now,
	}
}

func (r *Reminder) Run(ctx context.Context) (*Report, error) {
	today := availability.DateKey(r.now().In(r.loc))

	rows, err := r.bookings.GetBookingsByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("load bookings for %s: %w", today, err)
	}

	report := &Report{Date: today}
	for _, b := range rows {
		if b.Status != booking.StatusBooked {
			continue
		}
		report.Total++

		msg := notify.To(r.member(ctx, b), "Session today", fmt.Sprintf("You have a PT session today at %s.", b.Time))
		if channel, err := r.out.Deliver(ctx, msg); err != nil {
			report.Failed++
			logger.Warn("reminder not delivered", "user_id", b.UserID, "booking_id", b.ID, "channel", channel, "error", err)
			continue
		}
		report.Sent++
	}

	report.ReportSent = r.sendReport(ctx, report)
	logger.Info("daily reminders sent", "date", today, "total", report.Total, "sent", report.Sent, "failed", report.Failed)
	return report, nil
}

// member prefers the stored profile, which carries the push id; the joined
// row is enough for an email.
func (r *Reminder) member(ctx context.Context, b booking.BookingWithMember) *user.User {
	u, err := r.dir.FindByID(ctx, b.UserID)
	if err == nil {
		return u
	}
	logger.Warn("failed to load member for reminder", "user_id", b.UserID, "error", err)
	return &user.User{ID: b.UserID, Name: b.UserName, Email: b.UserEmail}
}

func (r *Reminder) sendReport(ctx context.Context, report *Report) bool {
	trainer, err := r.dir.FindFirstAdmin(ctx)
	if err != nil {
		logger.Warn("no trainer to report reminders to", "error", err)
		return false
	}

	if _, err := r.out.Deliver(ctx, notify.To(trainer, "Reminder report", report.String())); err != nil {
		logger.Warn("failed to send reminder report", "error", err)
		return false
	}
	return true
}
