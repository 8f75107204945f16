package db

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
)

const aquariumColumns = `id, name, location, tank_size, water_type, maintenance, temperature, feeding, created_at, updated_at`

func scanAquarium(row pgx.Row) (*entity.Aquarium, error) {
	var (
		id, name, location, waterType, maintenance, feeding string
		tankSize, temperature                               float64
		createdAt, updatedAt                                time.Time
	)

	if err := row.Scan(&id, &name, &location, &tankSize, &waterType, &maintenance,
		&temperature, &feeding, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	aq := entity.NewAquarium(id, name, location, tankSize, waterType, maintenance, temperature, feeding)
	aq.CreatedAt = createdAt
	aq.UpdatedAt = updatedAt
	return aq, nil
}

func (s *DB) GetAquarium(ctx context.Context, id string) (_ *entity.Aquarium, err error) {
	ctx, span := s.startSpan(ctx, "GetAquarium")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+aquariumColumns+` FROM aquariums WHERE id = $1`, id)

	aq, err := scanAquarium(row)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return aq, nil
}

// listQuery builds the filtered listing and its count. Both share the same
// WHERE clause and arguments.
func listQuery(filter entity.AquariumListFilter) (list, count string, args []any) {
	var where []string
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, "(name ILIKE $1 OR location ILIKE $1)")
	}
	if filter.WaterType != "" {
		args = append(args, filter.WaterType)
		where = append(where, "LOWER(water_type) = LOWER($"+strconv.Itoa(len(args))+")")
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	count = `SELECT COUNT(*) FROM aquariums` + clause
	list = `SELECT ` + aquariumColumns + ` FROM aquariums` + clause +
		` ORDER BY seq LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	return list, count, args
}

func (s *DB) ListAquariums(ctx context.Context, filter entity.AquariumListFilter) (_ []entity.Aquarium, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListAquariums")
	defer func() { s.endSpan(span, err) }()

	list, count, args := listQuery(filter)

	var total int64
	if err = s.conn.QueryRow(ctx, count, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.conn.Query(ctx, list, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	aquariums := make([]entity.Aquarium, 0, max(filter.Limit, 0))
	for rows.Next() {
		aq, scanErr := scanAquarium(rows)
		if scanErr != nil {
			err = scanErr
			return nil, 0, err
		}
		aquariums = append(aquariums, *aq)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return aquariums, total, nil
}

func (s *DB) CreateAquarium(ctx context.Context, in entity.Aquarium) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAquarium")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO aquariums (`+aquariumColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		in.ID(), in.Name(), in.Location(), in.TankSize(), in.WaterType(), in.Maintenance(),
		in.Temperature(), in.Feeding(), in.CreatedAt, in.UpdatedAt,
	)
	err = s.mapError(err)
	return err
}

func (s *DB) UpdateAquarium(ctx context.Context, in entity.Aquarium) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAquarium")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE aquariums SET name = $2, location = $3, tank_size = $4, water_type = $5,
			maintenance = $6, temperature = $7, feeding = $8, updated_at = $9
		WHERE id = $1`,
		in.ID(), in.Name(), in.Location(), in.TankSize(), in.WaterType(), in.Maintenance(),
		in.Temperature(), in.Feeding(), in.UpdatedAt,
	)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
	}
	return err
}

func (s *DB) DeleteAquarium(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteAquarium")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM aquariums WHERE id = $1`, id)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
	}
	return err
}
