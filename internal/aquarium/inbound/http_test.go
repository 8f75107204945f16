package inbound

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/aquarium/internal/aquarium/outbound/memory"
	"github.com/shandysiswandi/aquarium/internal/aquarium/usecase"
	"github.com/shandysiswandi/aquarium/internal/pkg/clock"
	"github.com/shandysiswandi/aquarium/internal/pkg/config"
	"github.com/shandysiswandi/aquarium/internal/pkg/instrument"
	"github.com/shandysiswandi/aquarium/internal/pkg/router"
	"github.com/shandysiswandi/aquarium/internal/pkg/uid"
	"github.com/shandysiswandi/aquarium/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reefTank = `{"identifier":"00042","name":"Reef Tank","location":"Living Room","tank_size":"120","water_type":"Salt","maintenance":"Weekly","temperature":"25.5","feeding":"Flakes"}`

type envelope struct {
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    map[string]any    `json:"meta"`
	Error   map[string]string `json:"error"`
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}\n"))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)
	require.NoError(t, usecase.RegisterRules(v))

	ins := instrument.NewNoop()
	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID(), Instrument: ins})

	RegisterHTTPEndpoint(r, usecase.New(usecase.Dependency{
		RepoDB:     memory.NewMemory(),
		Validator:  v,
		Config:     cfg,
		Clock:      clock.Fixed(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)),
		Instrument: ins,
	}))

	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func TestHTTP_FieldValidate(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		want   FieldVerdictResponse
	}{
		{
			name:   "valid",
			body:   `{"field":"identifier","value":"00042"}`,
			status: http.StatusOK,
			want:   FieldVerdictResponse{Field: "identifier", Valid: true},
		},
		{
			name:   "parse failure",
			body:   `{"field":"temperature","value":"hot"}`,
			status: http.StatusOK,
			want:   FieldVerdictResponse{Field: "temperature", Kind: "PARSE_FAILURE", Message: "Temperature must be a valid numeric value."},
		},
		{
			name:   "unknown field",
			body:   `{"field":"colour","value":"red"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed body",
			body:   `{"field":`,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, h, http.MethodPost, "/api/v1/aquariums/validate", tt.body)

			assert.Equal(t, tt.status, status)
			if status == http.StatusOK {
				var got FieldVerdictResponse
				require.NoError(t, json.Unmarshal(env.Data, &got))
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestHTTP_FormValidate(t *testing.T) {
	h := newTestServer(t)

	status, env := do(t, h, http.MethodPost, "/api/v1/aquariums/validate/form",
		`{"identifier":"42","name":"Reef Tank","location":"","tank_size":"1","water_type":"Salt","maintenance":"Weekly","temperature":"100","feeding":"Flakes"}`)

	require.Equal(t, http.StatusOK, status)
	var got FormValidateResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.False(t, got.Valid)
	require.Len(t, got.Fields, 8)
	assert.Equal(t, FieldVerdictResponse{Field: "identifier", Kind: "FORMAT_MISMATCH", Message: "Aquarium ID must be exactly 5 digits."}, got.Fields[0])
	assert.Equal(t, FieldVerdictResponse{Field: "location", Kind: "EMPTY_FIELD", Message: "Location cannot be empty."}, got.Fields[2])
	assert.Equal(t, "RANGE_VIOLATION", got.Fields[6].Kind)
}

func TestHTTP_AquariumLifecycle(t *testing.T) {
	h := newTestServer(t)

	status, env := do(t, h, http.MethodPost, "/api/v1/aquariums", reefTank)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Aquarium created", env.Message)

	status, _ = do(t, h, http.MethodPost, "/api/v1/aquariums", reefTank)
	assert.Equal(t, http.StatusConflict, status)

	status, env = do(t, h, http.MethodGet, "/api/v1/aquariums/00042", "")
	require.Equal(t, http.StatusOK, status)
	var detail AquariumDetailResponse
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "00042", detail.Aquarium.ID)
	assert.Equal(t, 25.5, detail.Aquarium.Temperature)

	status, env = do(t, h, http.MethodPatch, "/api/v1/aquariums/00042", `{"feeding":"Live Brine Shrimp"}`)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "Live Brine Shrimp", detail.Aquarium.Feeding)

	status, env = do(t, h, http.MethodPatch, "/api/v1/aquariums/00042", `{"temperature":"-3"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, map[string]string{"temperature": "Temperature must be between 0 and 80 degrees."}, env.Error)

	status, env = do(t, h, http.MethodPut, "/api/v1/aquariums/00042",
		`{"name":"Reef Tank","location":"Study","tank_size":"150","water_type":"Salt","maintenance":"Daily","temperature":"26","feeding":"Flakes"}`)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "Study", detail.Aquarium.Location)
	assert.Equal(t, 150.0, detail.Aquarium.TankSize)

	status, env = do(t, h, http.MethodGet, "/api/v1/aquariums?size=5&water_type=salt", "")
	require.Equal(t, http.StatusOK, status)
	var list AquariumsResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list.Aquariums, 1)
	assert.Equal(t, float64(1), env.Meta["total"])
	assert.Equal(t, float64(5), env.Meta["size"])

	status, _ = do(t, h, http.MethodDelete, "/api/v1/aquariums/00042", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, h, http.MethodGet, "/api/v1/aquariums/00042", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHTTP_AquariumCreateValidation(t *testing.T) {
	h := newTestServer(t)

	status, env := do(t, h, http.MethodPost, "/api/v1/aquariums",
		`{"identifier":"4242","name":"","location":"Hall","tank_size":"abc","water_type":"Salt","maintenance":"Weekly","temperature":"20","feeding":"Flakes"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, map[string]string{
		"identifier": "Aquarium ID must be exactly 5 digits.",
		"name":       "Aquarium name cannot be empty.",
		"tank_size":  "Tank size must be a numeric value.",
	}, env.Error)

	status, _ = do(t, h, http.MethodPost, "/api/v1/aquariums", `{"identifier":42}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, h, http.MethodGet, "/api/v1/aquariums/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = do(t, h, http.MethodGet, "/api/v1/aquariums?page=x", "")
	assert.Equal(t, http.StatusBadRequest, status)
}
