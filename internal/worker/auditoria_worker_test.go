package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuditLogRepo struct {
	creados []model.AuditLog
}

func (r *stubAuditLogRepo) Create(ctx context.Context, l *model.AuditLog) error {
	r.creados = append(r.creados, *l)
	return nil
}

func (r *stubAuditLogRepo) List(ctx context.Context, filter dto.AuditoriaFilter) ([]model.AuditLog, int64, error) {
	return r.creados, int64(len(r.creados)), nil
}

func TestProcesarPersisteEvento(t *testing.T) {
	repo := &stubAuditLogRepo{}
	w := NewAuditoriaWorker(repo)

	uid := uint(7)
	payload, err := json.Marshal(EventoAuditoria{
		UsuarioID:       &uid,
		UsuarioUsername: "operario1",
		Accion:          model.AccionCrear,
		Entidad:         "lote",
		EntidadID:       42,
		DatosNuevos:     SnapshotJSON(map[string]string{"numero_lote": "L-001"}),
	})
	require.NoError(t, err)

	require.NoError(t, w.Procesar(context.Background(), payload))
	require.Len(t, repo.creados, 1)

	entrada := repo.creados[0]
	assert.Equal(t, "operario1", entrada.UsuarioUsername)
	assert.Equal(t, model.AccionCrear, entrada.Accion)
	assert.Equal(t, "lote", entrada.Entidad)
	assert.Equal(t, uint(42), entrada.EntidadID)
	assert.False(t, entrada.FechaHora.IsZero(), "sin fecha en el evento se sella al procesar")
	require.NotNil(t, entrada.DatosNuevos)
	assert.Contains(t, *entrada.DatosNuevos, "L-001")
}

func TestProcesarPayloadInvalido(t *testing.T) {
	w := NewAuditoriaWorker(&stubAuditLogRepo{})
	err := w.Procesar(context.Background(), []byte("{no es json"))
	assert.Error(t, err)
}

func TestSnapshotJSON(t *testing.T) {
	s := SnapshotJSON(map[string]int{"pallets": 10})
	require.NotNil(t, s)
	assert.JSONEq(t, `{"pallets":10}`, *s)

	// valores no serializables no cortan el flujo
	assert.Nil(t, SnapshotJSON(make(chan int)))
}
