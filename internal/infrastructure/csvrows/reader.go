// Package csvrows convierte planillas CSV exportadas a mano en registros clave → valor
// listos para la reconciliación. Acepta UTF-8 (con o sin BOM), UTF-16 con BOM y
// exportaciones latin-1 / windows-1252.
package csvrows

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/relief-inventory-api/internal/domain"
)

// Options opciones de lectura.
type Options struct {
	// Charset de la planilla: "utf-8" (por defecto), "latin1"/"iso-8859-1" o "windows-1252"/"cp1252".
	Charset string
	// MaxRows corta la lectura al superar este número de filas de datos; 0 sin límite.
	MaxRows int
}

// ErrTooManyRows el archivo supera Options.MaxRows.
var ErrTooManyRows = fmt.Errorf("%w: el archivo supera el máximo de filas", domain.ErrInvalidInput)

// Sheet registros leídos de una planilla.
type Sheet struct {
	// Records un registro por fila de datos, con las claves tal como aparecen en la cabecera.
	Records []map[string]string
	// Rows número de fila de datos de cada registro (1 = la línea siguiente a la cabecera).
	// Las líneas vacías omitidas siguen contando, así el número coincide con el archivo.
	Rows []int
}

// Read lee la cabecera y devuelve los registros de datos. Las líneas vacías se ignoran;
// las celdas faltantes quedan ausentes.
// Un archivo sin cabecera o sin filas de datos devuelve domain.ErrInvalidInput.
func Read(r io.Reader, opts Options) (*Sheet, error) {
	dec, err := decoder(opts.Charset)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(dec.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: el archivo CSV está vacío", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cabecera CSV ilegible: %v", domain.ErrInvalidInput, err)
	}
	headerLine, _ := cr.FieldPos(0)

	sheet := &Sheet{}
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: CSV mal formado: %v", domain.ErrInvalidInput, err)
		}
		if isBlank(fields) {
			continue
		}
		if opts.MaxRows > 0 && len(sheet.Records) >= opts.MaxRows {
			return nil, ErrTooManyRows
		}
		line, _ := cr.FieldPos(0)
		sheet.Records = append(sheet.Records, toRecord(header, fields))
		sheet.Rows = append(sheet.Rows, line-headerLine)
	}

	if len(sheet.Records) == 0 {
		return nil, fmt.Errorf("%w: el archivo CSV no contiene filas de datos", domain.ErrInvalidInput)
	}
	return sheet, nil
}

func toRecord(header, fields []string) map[string]string {
	rec := make(map[string]string, len(header))
	for i, key := range header {
		if i >= len(fields) {
			break
		}
		if prev, ok := rec[key]; ok && prev != "" {
			continue
		}
		rec[key] = fields[i]
	}
	return rec
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// decoder resuelve el charset. El BOM, si existe, tiene prioridad sobre lo indicado.
func decoder(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("%w: charset no soportado %q", domain.ErrInvalidInput, charset)
}
