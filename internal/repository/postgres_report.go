package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"cinereserve/internal/domain"
)

type PostgresReportRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReportRepository(db *pgxpool.Pool) *PostgresReportRepository {
	return &PostgresReportRepository{
		db: db,
	}
}

// ShowtimeReports aggregates confirmed reservations per showtime. Cancelled
// history stays in the tables, which is why claims are deactivated rather
// than deleted.
func (p *PostgresReportRepository) ShowtimeReports(
	ctx context.Context,
	filters domain.ReportFilters) ([]domain.ShowtimeReport, error) {

	query := `
		SELECT
			sh.id,
			m.title,
			t.name,
			sh.start_time,
			COALESCE(agg.total_reservations, 0),
			COALESCE(agg.seats_booked, 0),
			t.seat_count - COALESCE(agg.seats_booked, 0),
			COALESCE(agg.total_revenue, 0)
		FROM showtimes sh
		JOIN movies m ON sh.movie_id = m.id
		JOIN theaters t ON sh.theater_id = t.id
		LEFT JOIN LATERAL (
			SELECT
				COUNT(*) AS total_reservations,
				SUM(r.total_price) AS total_revenue,
				(SELECT COUNT(*) FROM reservation_seats rs
					WHERE rs.showtime_id = sh.id AND rs.active) AS seats_booked
			FROM reservations r
			WHERE r.showtime_id = sh.id AND r.status = 'confirmed'
		) agg ON true
		WHERE ($1::timestamptz IS NULL OR sh.start_time >= $1)
			AND ($2::timestamptz IS NULL OR sh.start_time <= $2)
		ORDER BY sh.start_time
	`

	rows, err := p.db.Query(ctx, query, filters.From, filters.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]domain.ShowtimeReport, 0)

	for rows.Next() {
		var report domain.ShowtimeReport

		err = rows.Scan(
			&report.ShowtimeID,
			&report.MovieTitle,
			&report.TheaterName,
			&report.StartTime,
			&report.TotalReservations,
			&report.SeatsBooked,
			&report.SeatsAvailable,
			&report.TotalRevenue,
		)
		if err != nil {
			return nil, err
		}

		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (p *PostgresReportRepository) Summary(ctx context.Context) (*domain.SummaryReport, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM reservations WHERE status = 'confirmed'),
			(SELECT COALESCE(SUM(total_price), 0) FROM reservations WHERE status = 'confirmed'),
			(SELECT COUNT(DISTINCT user_id) FROM reservations WHERE status = 'confirmed'),
			(SELECT COUNT(*) FROM reservation_seats WHERE active)
	`

	var summary domain.SummaryReport

	err := p.db.QueryRow(ctx, query).Scan(
		&summary.TotalReservations,
		&summary.TotalRevenue,
		&summary.TotalCustomers,
		&summary.TotalSeatsBooked,
	)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
