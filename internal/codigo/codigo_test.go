package codigo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestSiguienteSecuencia(t *testing.T) {
	cases := []struct {
		ultimo   string
		esperado int
	}{
		{"LT250001", 2},
		{"LT250042", 43},
		{"LT259999", 10000}, // el caller corta con ErrSecuenciaAgotada
		{"PD250010", 11},
		{"XYZ", 1},      // demasiado corto
		{"LT25ABCD", 1}, // los últimos 4 no son dígitos
	}
	for _, tc := range cases {
		t.Run(tc.ultimo, func(t *testing.T) {
			assert.Equal(t, tc.esperado, siguienteSecuencia(tc.ultimo))
		})
	}
}

// newMockDB abre un *gorm.DB respaldado por sqlmock.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"})
	db, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func newGeneratorTest(t *testing.T, fecha time.Time) (*Generator, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	g := NewGenerator(db)
	g.now = func() time.Time { return fecha }
	return g, mock
}

var junio2025 = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func TestNextPrimerCodigoDelAnio(t *testing.T) {
	g, mock := newGeneratorTest(t, junio2025)

	mock.ExpectQuery(`SELECT "codigo" FROM "lotes"`).
		WithArgs("LT25%", 1).
		WillReturnRows(sqlmock.NewRows([]string{"codigo"}))

	cod, err := g.Next(context.Background(), Lote)
	require.NoError(t, err)
	assert.Equal(t, "LT250001", cod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextIncrementaUltimo(t *testing.T) {
	g, mock := newGeneratorTest(t, junio2025)

	mock.ExpectQuery(`SELECT "codigo" FROM "productos"`).
		WithArgs("PD25%", 1).
		WillReturnRows(sqlmock.NewRows([]string{"codigo"}).AddRow("PD250041"))

	cod, err := g.Next(context.Background(), Producto)
	require.NoError(t, err)
	assert.Equal(t, "PD250042", cod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextReiniciaPorAnio(t *testing.T) {
	// En enero de 2026 el prefijo cambia a LT26: no matchea ningún código de
	// 2025 y la secuencia arranca de nuevo en 1.
	enero2026 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	g, mock := newGeneratorTest(t, enero2026)

	mock.ExpectQuery(`SELECT "codigo" FROM "lotes"`).
		WithArgs("LT26%", 1).
		WillReturnRows(sqlmock.NewRows([]string{"codigo"}))

	cod, err := g.Next(context.Background(), Lote)
	require.NoError(t, err)
	assert.Equal(t, "LT260001", cod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextSecuenciaAgotada(t *testing.T) {
	g, mock := newGeneratorTest(t, junio2025)

	mock.ExpectQuery(`SELECT "codigo" FROM "lotes"`).
		WithArgs("LT25%", 1).
		WillReturnRows(sqlmock.NewRows([]string{"codigo"}).AddRow("LT259999"))

	_, err := g.Next(context.Background(), Lote)
	assert.ErrorIs(t, err, ErrSecuenciaAgotada)
}

func TestNextCodigoIlegibleReinicia(t *testing.T) {
	// Un código con sufijo no numérico no debe romper la serie.
	g, mock := newGeneratorTest(t, junio2025)

	mock.ExpectQuery(`SELECT "codigo" FROM "lotes"`).
		WithArgs("LT25%", 1).
		WillReturnRows(sqlmock.NewRows([]string{"codigo"}).AddRow("LT25XXXX"))

	cod, err := g.Next(context.Background(), Lote)
	require.NoError(t, err)
	assert.Equal(t, "LT250001", cod)
}
