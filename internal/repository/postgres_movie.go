package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cinereserve/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(
	ctx context.Context,
	filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(), id, title, description, poster_url, genre, duration_minutes,
			release_date, rating, active, created_at
		FROM movies
		WHERE active AND ($1 = '' OR genre = $1)
		ORDER BY release_date DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, filters.Genre, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	movies := make([]*domain.Movie, 0)
	totalRecords := 0

	for rows.Next() {
		var movie domain.Movie

		err = rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.PosterUrl,
			&movie.Genre,
			&movie.Duration,
			&movie.ReleaseDate,
			&movie.Rating,
			&movie.Active,
			&movie.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, description, poster_url, genre, duration_minutes,
			release_date, rating, active, created_at
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.PosterUrl,
		&movie.Genre,
		&movie.Duration,
		&movie.ReleaseDate,
		&movie.Rating,
		&movie.Active,
		&movie.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, description, poster_url, genre, duration_minutes, release_date, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, active, created_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Description,
		movie.PosterUrl,
		movie.Genre,
		movie.Duration,
		movie.ReleaseDate,
		movie.Rating).Scan(&movie.ID, &movie.Active, &movie.CreatedAt)
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, description = $2, poster_url = $3, genre = $4,
			duration_minutes = $5, release_date = $6, rating = $7
		WHERE id = $8
		RETURNING active
	`

	err := p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Description,
		movie.PosterUrl,
		movie.Genre,
		movie.Duration,
		movie.ReleaseDate,
		movie.Rating,
		movie.ID).Scan(&movie.Active)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) Deactivate(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `UPDATE movies SET active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
