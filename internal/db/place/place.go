package place

import (
	"context"
	"errors"
	"time"
	c "wonderchain/internal/core/domain/common"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/place"
	"wonderchain/internal/db"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const SLUG_CONSTRAINT_NAME = "place_slug_idx"

const placeColumns = `id, slug, name, summary, description, lat, lng, image_url, status, created_at, updated_at`

type PgxPlaceRepository struct {
	db db.DBTX
}

func NewPgxPlaceRepository(conn db.DBTX) *PgxPlaceRepository {
	if conn == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxPlaceRepository{db: conn}
}

func (r *PgxPlaceRepository) Create(ctx context.Context, input place.CreateInput) (p place.Place, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO place (slug, name, summary, description, lat, lng, image_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING `+placeColumns,
		string(input.Slug),
		input.Name,
		encodeOptionalText(input.Summary),
		encodeOptionalText(input.Description),
		input.Coordinates.Latitude,
		input.Coordinates.Longitude,
		encodeOptionalText(input.ImageURL),
		input.Status.String(),
		input.CreatedAt,
	)
	p, err = scanPlace(row)
	if db.IsUniqueViolation(err, SLUG_CONSTRAINT_NAME) {
		return p, place.ErrSlugAlreadyExists
	}
	if err != nil {
		return p, err
	}
	return p, p.Validate()
}

func (r *PgxPlaceRepository) GetByID(ctx context.Context, id place.ID) (p place.Place, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+placeColumns+` FROM place WHERE id = $1`, int64(id))
	p, err = scanPlace(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, place.ErrPlaceDoesNotExist
	}
	return p, err
}

func (r *PgxPlaceRepository) ListPublished(ctx context.Context) (places []place.Place, err error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+placeColumns+` FROM place
		WHERE status = $1
		ORDER BY updated_at DESC, id DESC`,
		place.StatusPublished.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places = make([]place.Place, 0)
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

func (r *PgxPlaceRepository) SetStatus(
	ctx context.Context,
	id place.ID,
	status place.Status,
	at time.Time,
) (p place.Place, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE place SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+placeColumns,
		int64(id),
		status.String(),
		at,
	)
	p, err = scanPlace(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, place.ErrPlaceDoesNotExist
	}
	return p, err
}

func encodeOptionalText(value c.Optional[string]) pgtype.Text {
	if !value.IsPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: value.Value, Status: pgtype.Present}
}

func decodeOptionalText(value pgtype.Text) c.Optional[string] {
	return c.NewOptional(value.String, value.Status == pgtype.Present)
}

func scanPlace(row pgx.Row) (p place.Place, err error) {
	var (
		id          int64
		slug        string
		summary     pgtype.Text
		description pgtype.Text
		imageURL    pgtype.Text
		status      string
	)
	err = row.Scan(
		&id,
		&slug,
		&p.Name,
		&summary,
		&description,
		&p.Coordinates.Latitude,
		&p.Coordinates.Longitude,
		&imageURL,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	p.Status, err = place.ParseStatus(status)
	if err != nil {
		return p, err
	}
	p.ID = place.ID(id)
	p.Slug = place.Slug(slug)
	p.Summary = decodeOptionalText(summary)
	p.Description = decodeOptionalText(description)
	p.ImageURL = decodeOptionalText(imageURL)
	return p, nil
}
