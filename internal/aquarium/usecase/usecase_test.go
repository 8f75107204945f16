package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/aquarium/outbound/memory"
	"github.com/shandysiswandi/aquarium/internal/pkg/clock"
	"github.com/shandysiswandi/aquarium/internal/pkg/config"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
	"github.com/shandysiswandi/aquarium/internal/pkg/idempotency"
	"github.com/shandysiswandi/aquarium/internal/pkg/instrument"
	"github.com/shandysiswandi/aquarium/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func validForm() AquariumForm {
	return AquariumForm{
		ID:          "01234",
		Name:        "Reef Tank",
		Location:    "Living Room",
		TankSize:    "120.5",
		WaterType:   "Salt",
		Maintenance: "Weekly",
		Temperature: "25",
		Feeding:     "Twice Daily",
	}
}

type fakeRepo struct {
	*memory.Memory
	getErr    error
	createErr error
	updateErr error
	deleteErr error
	listErr   error
	creates   int
}

func (f *fakeRepo) GetAquarium(ctx context.Context, id string) (*entity.Aquarium, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Memory.GetAquarium(ctx, id)
}

func (f *fakeRepo) ListAquariums(ctx context.Context, filter entity.AquariumListFilter) ([]entity.Aquarium, int64, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.Memory.ListAquariums(ctx, filter)
}

func (f *fakeRepo) CreateAquarium(ctx context.Context, in entity.Aquarium) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	return f.Memory.CreateAquarium(ctx, in)
}

func (f *fakeRepo) UpdateAquarium(ctx context.Context, in entity.Aquarium) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.Memory.UpdateAquarium(ctx, in)
}

func (f *fakeRepo) DeleteAquarium(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Memory.DeleteAquarium(ctx, id)
}

type fakeIdempotency struct {
	idempotency.Idempotency
	seen    map[string]bool
	execErr error
	markErr error // returned after fn succeeds, as when marking completed fails
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if f.execErr != nil {
		return f.execErr
	}
	if f.seen[key] {
		return idempotency.ErrAlreadyCompleted
	}
	f.seen[key] = true
	if err := fn(ctx); err != nil {
		return err
	}
	return f.markErr
}

type fixture struct {
	uc    *Usecase
	repo  *fakeRepo
	idemp *fakeIdempotency
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)
	require.NoError(t, RegisterRules(v))

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  aquarium:\n    idempotency_ttl: 60\n"))
	require.NoError(t, err)

	repo := &fakeRepo{Memory: memory.NewMemory()}
	idemp := &fakeIdempotency{seen: map[string]bool{}}

	uc := New(Dependency{
		RepoDB:      repo,
		Idempotency: idemp,
		Validator:   v,
		Config:      cfg,
		Clock:       clock.Fixed(testNow),
		Instrument:  instrument.NewNoop(),
	})

	return &fixture{uc: uc, repo: repo, idemp: idemp}
}

func (f *fixture) seed(t *testing.T, form AquariumForm) {
	t.Helper()

	_, err := f.uc.AquariumCreate(context.Background(), AquariumCreateInput{Form: form})
	require.NoError(t, err)
}

func requireCode(t *testing.T, err error, code goerror.Code) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr), "want *goerror.Error, got %v", err)
	require.Equal(t, code, gerr.Code())
	return gerr
}

func requireFields(t *testing.T, err error, want map[string]string) {
	t.Helper()

	gerr := requireCode(t, err, goerror.CodeInvalidInput)

	var verr validator.V10ValidationError
	if errors.As(err, &verr) {
		require.Equal(t, want, verr.Values())
		return
	}
	require.Equal(t, want, gerr.Fields())
}
