package booking

import (
	"context"
	"errors"
	"fmt"

	"ptslot/internal/availability"
)

// maxStatsDays bounds the range of one stats query.
const maxStatsDays = 366

var ErrInvalidRange = errors.New("invalid date range")

type DailyStats struct {
	Date      string `db:"date" json:"date" example:"2025-06-11"`
	Booked    int    `db:"booked" json:"booked" example:"6"`
	Cancelled int    `db:"cancelled" json:"cancelled" example:"1"`
}

type MemberStats struct {
	UserID    int    `db:"user_id" json:"user_id" example:"7"`
	UserName  string `db:"user_name" json:"user_name" example:"Kim Minji"`
	Booked    int    `db:"booked" json:"booked" example:"4"`
	Cancelled int    `db:"cancelled" json:"cancelled" example:"0"`
}

type StatsResponse struct {
	From     string        `json:"from" example:"2025-06-01"`
	To       string        `json:"to" example:"2025-06-30"`
	ByDay    []DailyStats  `json:"by_day"`
	ByMember []MemberStats `json:"by_member"`
}

func (r *repository) GetDailyStats(ctx context.Context, from, to string) ([]DailyStats, error) {
	query := `
		SELECT
			to_char(date, 'YYYY-MM-DD') AS date,
			COUNT(*) FILTER (WHERE status = 'booked')    AS booked,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled
		FROM bookings
		WHERE date BETWEEN $1 AND $2
		GROUP BY bookings.date
		ORDER BY bookings.date
	`
	stats := []DailyStats{}
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *repository) GetMemberStats(ctx context.Context, from, to string) ([]MemberStats, error) {
	query := `
		SELECT
			u.id   AS user_id,
			u.name AS user_name,
			COUNT(*) FILTER (WHERE b.status = 'booked')    AS booked,
			COUNT(*) FILTER (WHERE b.status = 'cancelled') AS cancelled
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.date BETWEEN $1 AND $2
		GROUP BY u.id, u.name
		ORDER BY booked DESC, u.id
	`
	stats := []MemberStats{}
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}

// Stats counts bookings per session date and per member over [from, to].
func (s *service) Stats(ctx context.Context, from, to string) (*StatsResponse, error) {
	start, err := availability.ParseDate(from, s.loc)
	if err != nil {
		return nil, err
	}
	end, err := availability.ParseDate(to, s.loc)
	if err != nil {
		return nil, err
	}
	if end.Before(start) || end.Sub(start).Hours()/24 >= maxStatsDays {
		return nil, fmt.Errorf("%w: %s..%s", ErrInvalidRange, from, to)
	}

	resp := &StatsResponse{From: availability.DateKey(start), To: availability.DateKey(end)}
	if resp.ByDay, err = s.repo.GetDailyStats(ctx, resp.From, resp.To); err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	if resp.ByMember, err = s.repo.GetMemberStats(ctx, resp.From, resp.To); err != nil {
		return nil, fmt.Errorf("member stats: %w", err)
	}
	return resp, nil
}
