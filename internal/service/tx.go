package service

import (
	"context"
	"errors"

	"github.com/mattygrunge/planproduccion/internal/codigo"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Reintentos de asignar-código+insertar ante una violación de unicidad
// (dos requests concurrentes leyendo el mismo "último código").
const maxIntentosCodigo = 3

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// crearConCodigo asigna el próximo código de la serie e inserta dentro de la
// misma transacción. No hay lock entre leer el último código y escribir: si
// otro request ganó la carrera, el índice único hace fallar el insert, la
// transacción vuelve atrás completa y se reintenta con estado fresco.
func crearConCodigo(ctx context.Context, db *gorm.DB, codigos codigo.Allocator, k codigo.Kind, insertar func(tx *gorm.DB, cod string) error) error {
	var txErr error
	for intento := 1; intento <= maxIntentosCodigo; intento++ {
		txErr = runTx(ctx, db, func(tx *gorm.DB) error {
			cod, err := codigos.NextTx(tx, k)
			if err != nil {
				return err
			}
			return insertar(tx, cod)
		})
		if !errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return txErr
		}
		log.Warn().Int("intento", intento).Str("prefijo", k.Prefijo).
			Msg("código duplicado al insertar, reintentando asignación")
	}
	return ErrConflictoCodigo
}
