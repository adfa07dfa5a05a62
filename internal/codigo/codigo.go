// Package codigo genera los códigos secuenciales legibles que identifican a
// cada entidad del sistema. Formato: PREFIJO + AÑO (2 dígitos) + SECUENCIA
// (4 dígitos), ej. LT250001. La secuencia arranca en 1 con cada año nuevo.
//
// La asignación es una consulta pura contra los registros persistidos (mayor
// código existente para el prefijo+año) — no hay contador en memoria ni lock:
// dos requests concurrentes pueden leer el mismo último código y uno de los
// dos fallará contra el índice único de la columna. Los callers deben tratar
// asignar+insertar como una unidad reintentable.
package codigo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// ErrSecuenciaAgotada se devuelve cuando la secuencia anual de un prefijo
// supera 9999. El formato es de ancho fijo; un quinto dígito rompería el
// parseo de los últimos 4 caracteres, así que se corta con error explícito.
var ErrSecuenciaAgotada = errors.New("secuencia de codigos agotada para el año en curso")

// Kind describe dónde viven los códigos de un tipo de entidad: prefijo del
// código y tabla/columna donde buscar el último asignado.
type Kind struct {
	Prefijo string
	Tabla   string
	Columna string
}

// Tabla de tipos — un Kind por entidad con código propio.
var (
	Producto    = Kind{Prefijo: "PD", Tabla: "productos", Columna: "codigo"}
	Sector      = Kind{Prefijo: "SC", Tabla: "sectores", Columna: "codigo"}
	Linea       = Kind{Prefijo: "LN", Tabla: "lineas", Columna: "codigo"}
	Cliente     = Kind{Prefijo: "CL", Tabla: "clientes", Columna: "codigo"}
	EstadoLinea = Kind{Prefijo: "EL", Tabla: "estados_linea", Columna: "codigo"}
	Lote        = Kind{Prefijo: "LT", Tabla: "lotes", Columna: "codigo"}
	Usuario     = Kind{Prefijo: "US", Tabla: "usuarios", Columna: "codigo"}
)

// Allocator is the allocation contract services depend on.
type Allocator interface {
	Next(ctx context.Context, k Kind) (string, error)
	// NextTx allocates inside an open transaction so the read and the
	// subsequent insert share the same unit of work.
	NextTx(tx *gorm.DB, k Kind) (string, error)
}

type Generator struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{db: db, now: time.Now}
}

func (g *Generator) Next(ctx context.Context, k Kind) (string, error) {
	return g.next(g.db.WithContext(ctx), k)
}

func (g *Generator) NextTx(tx *gorm.DB, k Kind) (string, error) {
	if tx == nil {
		tx = g.db
	}
	return g.next(tx, k)
}

func (g *Generator) next(db *gorm.DB, k Kind) (string, error) {
	prefijo := fmt.Sprintf("%s%02d", k.Prefijo, g.now().Year()%100)

	// Último código del año en curso: el mayor lexicográfico del prefijo.
	var ultimos []string
	err := db.Table(k.Tabla).
		Where(k.Columna+" LIKE ?", prefijo+"%").
		Order(k.Columna + " DESC").
		Limit(1).
		Pluck(k.Columna, &ultimos).Error
	if err != nil {
		return "", err
	}

	secuencia := 1
	if len(ultimos) > 0 && ultimos[0] != "" {
		secuencia = siguienteSecuencia(ultimos[0])
	}
	if secuencia > 9999 {
		return "", ErrSecuenciaAgotada
	}
	return fmt.Sprintf("%s%04d", prefijo, secuencia), nil
}

// siguienteSecuencia parsea los últimos 4 caracteres del código anterior y
// suma 1. Si el código no parsea, la secuencia reinicia en 1.
func siguienteSecuencia(ultimo string) int {
	if len(ultimo) < 4 {
		return 1
	}
	n, err := strconv.Atoi(ultimo[len(ultimo)-4:])
	if err != nil {
		return 1
	}
	return n + 1
}
