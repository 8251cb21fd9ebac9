package booking

import (
	"context"
	"database/sql"
	"errors"

	"ptslot/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const bookingColumns = `id, user_id, to_char(date, 'YYYY-MM-DD') AS date, time, status, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, userID int, date, time string) (*Booking, error) {
	query := `
		INSERT INTO bookings (id, user_id, date, time, status)
		VALUES ($1, $2, $3, $4, 'booked')
		RETURNING ` + bookingColumns

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, uuid.NewString(), userID, date, time)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetBookingTimesForDate(ctx context.Context, date string) ([]string, error) {
	query := `SELECT time FROM bookings WHERE date = $1 AND status = 'booked' ORDER BY time`

	times := []string{}
	if err := r.db.SelectContext(ctx, &times, query, date); err != nil {
		return nil, err
	}
	return times, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	if !validID(id) {
		return nil, ErrBookingNotFound
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) CancelBooking(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrBookingNotFound
	}
	query := `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'booked'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY date DESC, time DESC
	`

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetUpcomingForUser(ctx context.Context, userID int, fromDate string) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND status = 'booked' AND date >= $2
		ORDER BY date, time
	`

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, userID, fromDate); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetBookingsByDate(ctx context.Context, date string) ([]BookingWithMember, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			to_char(b.date, 'YYYY-MM-DD') AS date,
			b.time,
			b.status,
			b.created_at,
			u.name AS user_name,
			u.email AS user_email
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		WHERE b.date = $1
		ORDER BY b.time, b.created_at
	`

	bookings := []BookingWithMember{}
	if err := r.db.SelectContext(ctx, &bookings, query, date); err != nil {
		return nil, err
	}

	return bookings, nil
}

// validID keeps ids that could never match out of uuid comparisons, which
// Postgres rejects outright.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
