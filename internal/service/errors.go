package service

import "errors"

// Errores de referencia y de conflicto. Los handlers los mapean a códigos
// HTTP; las advertencias de validación NO son errores y viajan en el DTO.
var (
	ErrProductoNoEncontrado    = errors.New("Producto no encontrado")
	ErrSectorNoEncontrado      = errors.New("Sector no encontrado")
	ErrLineaNoEncontrada       = errors.New("Línea no encontrada")
	ErrClienteNoEncontrado     = errors.New("Cliente no encontrado")
	ErrLoteNoEncontrado        = errors.New("Lote no encontrado")
	ErrEstadoLineaNoEncontrado = errors.New("Estado de línea no encontrado")
	ErrUsuarioNoEncontrado     = errors.New("Usuario no encontrado")

	ErrEstadoLineaNoProduccion = errors.New("Solo se pueden asociar lotes a estados de tipo 'Producción'")
	ErrTipoEstadoInvalido      = errors.New("Tipo de estado inválido")
	ErrFechaInvalida           = errors.New("Fecha inválida, se espera formato YYYY-MM-DD")
	ErrFechaHoraInvalida       = errors.New("Fecha y hora inválidas, se espera formato RFC 3339")
	ErrRangoFechasInvalido     = errors.New("La fecha de fin debe ser posterior a la de inicio")
	ErrOrdenInvalido           = errors.New("Campo o dirección de ordenamiento inválidos")

	ErrCredencialesInvalidas = errors.New("Credenciales inválidas")
	ErrTokenInvalido         = errors.New("Token inválido o expirado")
	ErrUsernameEnUso         = errors.New("El nombre de usuario ya está en uso")

	// ErrConflictoCodigo: la asignación de código perdió la carrera contra
	// otro request y agotó los reintentos. El caller puede reintentar la
	// operación completa.
	ErrConflictoCodigo = errors.New("Conflicto al asignar el código, reintente la operación")
)
