package service

import (
	"fmt"
	"strconv"
)

// Helpers puros sobre etiquetas de lote (numero_lote). Las etiquetas las
// carga el operario y pueden mezclar texto y números ("2024001", "L-001",
// "LOTE-2024-0005"); todas las comparaciones de secuencia se hacen sobre el
// ÚLTIMO grupo de dígitos consecutivos.

// extraerNumeroDeLote devuelve el entero formado por el último grupo de
// dígitos de la etiqueta, o false si la etiqueta no tiene dígitos.
//
//	"2024001"        -> 2024001
//	"L-001"          -> 1
//	"LOTE-2024-0005" -> 5
//	"ABC123XYZ"      -> 123
func extraerNumeroDeLote(numeroLote string) (int, bool) {
	inicio, fin := ultimoGrupoDigitos(numeroLote)
	if fin < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(numeroLote[inicio : fin+1])
	if err != nil {
		// grupos absurdamente largos desbordan int
		return 0, false
	}
	return n, true
}

// reemplazarUltimoNumero reconstruye la etiqueta sustituyendo su último grupo
// de dígitos por nuevo, con cero-padding al ancho original del grupo. Así se
// preserva el formato del operario: "L-003" + 4 -> "L-004".
func reemplazarUltimoNumero(numeroLote string, nuevo int) string {
	inicio, fin := ultimoGrupoDigitos(numeroLote)
	if fin < 0 {
		return strconv.Itoa(nuevo)
	}
	ancho := fin - inicio + 1
	return numeroLote[:inicio] + fmt.Sprintf("%0*d", ancho, nuevo) + numeroLote[fin+1:]
}

// ultimoGrupoDigitos devuelve los índices [inicio, fin] del último grupo de
// dígitos consecutivos, o (0, -1) si no hay dígitos.
func ultimoGrupoDigitos(s string) (int, int) {
	fin := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] >= '0' && s[i] <= '9' {
			fin = i
			break
		}
	}
	if fin < 0 {
		return 0, -1
	}
	inicio := fin
	for inicio > 0 && s[inicio-1] >= '0' && s[inicio-1] <= '9' {
		inicio--
	}
	return inicio, fin
}
