//go:build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
	"github.com/shandysiswandi/aquarium/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newPostgresDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("aquarium"),
		tcpostgres.WithUsername("aquarium"),
		tcpostgres.WithPassword("aquarium"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s := NewDB(pool, instrument.NewNoop())
	require.NoError(t, s.EnsureSchema(ctx))
	return s
}

func stamp(a *entity.Aquarium) entity.Aquarium {
	now := time.Now().UTC().Truncate(time.Microsecond)
	a.CreatedAt, a.UpdatedAt = now, now
	return *a
}

func TestDB_Postgres(t *testing.T) {
	s := newPostgresDB(t)
	ctx := context.Background()

	reef := stamp(entity.NewAquarium("00042", "Reef Display", "Lobby", 120, "Salt", "Weekly", 25.5, "Pellets"))
	pond := stamp(entity.NewAquarium("00043", "Koi Pond", "Garden", 900, "Fresh", "Monthly", 18, "Flakes"))

	require.NoError(t, s.CreateAquarium(ctx, reef))
	require.NoError(t, s.CreateAquarium(ctx, pond))
	assert.ErrorIs(t, s.CreateAquarium(ctx, reef), goerror.ErrConflict)

	got, err := s.GetAquarium(ctx, "00042")
	require.NoError(t, err)
	assert.Equal(t, "Reef Display", got.Name())
	assert.InDelta(t, 25.5, got.Temperature(), 1e-9)

	list, total, err := s.ListAquariums(ctx, entity.AquariumListFilter{WaterType: "fresh", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "00043", list[0].ID())

	list, total, err = s.ListAquariums(ctx, entity.AquariumListFilter{Search: "LOBBY", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "00042", list[0].ID())

	got.SetFeeding("Live Brine")
	require.NoError(t, s.UpdateAquarium(ctx, *got))
	got, err = s.GetAquarium(ctx, "00042")
	require.NoError(t, err)
	assert.Equal(t, "Live Brine", got.Feeding())

	require.NoError(t, s.DeleteAquarium(ctx, "00042"))
	assert.ErrorIs(t, s.DeleteAquarium(ctx, "00042"), goerror.ErrNotFound)
	_, err = s.GetAquarium(ctx, "00042")
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}
