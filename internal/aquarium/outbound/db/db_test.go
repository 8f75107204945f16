package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
	"github.com/shandysiswandi/aquarium/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *float64:
			*p = r.values[i].(float64)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *int64:
			*p = r.values[i].(int64)
		}
	}
	return nil
}

type fakeConn struct {
	row      fakeRow
	tag      pgconn.CommandTag
	execErr  error
	lastSQL  string
	lastArgs []any
}

func (f *fakeConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return f.tag, f.execErr
}

func (f *fakeConn) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func (f *fakeConn) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return f.row
}

func newTestDB(conn *fakeConn) *DB {
	return &DB{conn: conn, ins: instrument.NewNoop()}
}

func TestDB_mapError(t *testing.T) {
	s := newTestDB(&fakeConn{})

	assert.NoError(t, s.mapError(nil))
	assert.ErrorIs(t, s.mapError(pgx.ErrNoRows), goerror.ErrNotFound)
	assert.ErrorIs(t, s.mapError(&pgconn.PgError{Code: "23505"}), goerror.ErrConflict)
	assert.ErrorIs(t, s.mapError(assert.AnError), assert.AnError)
}

func TestListQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    entity.AquariumListFilter
		wantList  string
		wantCount string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			wantList:  "SELECT " + aquariumColumns + " FROM aquariums ORDER BY seq LIMIT $1 OFFSET $2",
			wantCount: "SELECT COUNT(*) FROM aquariums",
		},
		{
			name:      "search and water type",
			filter:    entity.AquariumListFilter{Search: "reef", WaterType: "Salt"},
			wantList:  "SELECT " + aquariumColumns + " FROM aquariums WHERE (name ILIKE $1 OR location ILIKE $1) AND LOWER(water_type) = LOWER($2) ORDER BY seq LIMIT $3 OFFSET $4",
			wantCount: "SELECT COUNT(*) FROM aquariums WHERE (name ILIKE $1 OR location ILIKE $1) AND LOWER(water_type) = LOWER($2)",
			wantArgs:  []any{"%reef%", "Salt"},
		},
		{
			name:      "water type only",
			filter:    entity.AquariumListFilter{WaterType: "Fresh"},
			wantList:  "SELECT " + aquariumColumns + " FROM aquariums WHERE LOWER(water_type) = LOWER($1) ORDER BY seq LIMIT $2 OFFSET $3",
			wantCount: "SELECT COUNT(*) FROM aquariums WHERE LOWER(water_type) = LOWER($1)",
			wantArgs:  []any{"Fresh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, count, args := listQuery(tt.filter)

			assert.Equal(t, tt.wantList, list)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestDB_GetAquarium(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	conn := &fakeConn{row: fakeRow{values: []any{
		"00042", "Reef Tank", "Living Room", 120.0, "Salt", "Weekly", 25.5, "Flakes", at, at,
	}}}

	got, err := newTestDB(conn).GetAquarium(context.Background(), "00042")

	require.NoError(t, err)
	assert.Equal(t, "00042", got.ID())
	assert.Equal(t, 120.0, got.TankSize())
	assert.Equal(t, at, got.CreatedAt)
	assert.Equal(t, []any{"00042"}, conn.lastArgs)

	conn.row = fakeRow{err: pgx.ErrNoRows}
	_, err = newTestDB(conn).GetAquarium(context.Background(), "00042")
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestDB_Writes(t *testing.T) {
	ctx := context.Background()
	aq := *entity.NewAquarium("00042", "Reef Tank", "Living Room", 120, "Salt", "Weekly", 25.5, "Flakes")

	conn := &fakeConn{execErr: &pgconn.PgError{Code: "23505"}}
	assert.ErrorIs(t, newTestDB(conn).CreateAquarium(ctx, aq), goerror.ErrConflict)
	assert.Len(t, conn.lastArgs, 10)

	conn = &fakeConn{tag: pgconn.NewCommandTag("UPDATE 0")}
	assert.ErrorIs(t, newTestDB(conn).UpdateAquarium(ctx, aq), goerror.ErrNotFound)

	conn = &fakeConn{tag: pgconn.NewCommandTag("UPDATE 1")}
	assert.NoError(t, newTestDB(conn).UpdateAquarium(ctx, aq))

	conn = &fakeConn{tag: pgconn.NewCommandTag("DELETE 0")}
	assert.ErrorIs(t, newTestDB(conn).DeleteAquarium(ctx, "00042"), goerror.ErrNotFound)

	conn = &fakeConn{tag: pgconn.NewCommandTag("DELETE 1")}
	assert.NoError(t, newTestDB(conn).DeleteAquarium(ctx, "00042"))
}
