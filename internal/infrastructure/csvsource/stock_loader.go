// Package csvsource implementa repository.StockSource sobre el CSV de distribución de
// medicamentos por unidad de salud (columnas unidade, distrito, produto, quantidade).
package csvsource

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/medicamentos-api/internal/domain"
	"github.com/jhoicas/medicamentos-api/internal/domain/entity"
	"github.com/jhoicas/medicamentos-api/internal/domain/repository"
	"github.com/jhoicas/medicamentos-api/internal/domain/stock"
	"github.com/jhoicas/medicamentos-api/pkg/config"
)

// Nombres de columna obligatorios en la cabecera.
const (
	ColUnit     = "unidade"
	ColDistrict = "distrito"
	ColProduct  = "produto"
	ColQuantity = "quantidade"
)

var requiredColumns = []string{ColUnit, ColDistrict, ColProduct, ColQuantity}

var _ repository.StockSource = (*StockLoader)(nil)

// StockLoader lee el snapshot desde un archivo CSV separado por comas.
type StockLoader struct {
	path     string
	encoding string
	now      func() time.Time
}

// NewStockLoader construye el cargador. encoding: config.EncodingUTF8 o config.EncodingLatin1.
func NewStockLoader(path, encoding string) *StockLoader {
	return &StockLoader{path: path, encoding: encoding, now: time.Now}
}

// Load abre el archivo y lo parsea completo. Cualquier error aborta la carga.
func (l *StockLoader) Load(ctx context.Context) (*entity.StockTable, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("csv: abrir %s: %w", l.path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if l.encoding == config.EncodingLatin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	records, err := ParseRecords(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("csv: %s: %w", l.path, err)
	}
	return entity.NewStockTable(uuid.NewString(), l.path, l.now(), records), nil
}

// ParseRecords lee la cabecera, ubica las columnas obligatorias y normaliza cada cantidad.
// No hay modo parcial: el primer error de parseo se devuelve como *stock.ParseError.
func ParseRecords(ctx context.Context, r io.Reader) ([]entity.StockRecord, error) {
	br := bufio.NewReader(r)
	skipBOM(br)

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("archivo vacío: %w", domain.ErrMissingColumn)
		}
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []entity.StockRecord
	for n := 0; ; n++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila: %w", err)
		}
		if n%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line, _ := cr.FieldPos(0)

		raw := field(row, idx[ColQuantity])
		qty, err := stock.ParseQuantity(raw)
		if err != nil {
			return nil, &stock.ParseError{Line: line, Column: ColQuantity, Value: raw, Err: err}
		}
		records = append(records, entity.StockRecord{
			Unit:     strings.TrimSpace(field(row, idx[ColUnit])),
			District: strings.TrimSpace(field(row, idx[ColDistrict])),
			Product:  strings.TrimSpace(field(row, idx[ColProduct])),
			Quantity: qty,
		})
	}
	return records, nil
}

// columnIndex mapea nombre de columna → posición. Acepta columnas extra y cualquier orden.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(missing, ", "), domain.ErrMissingColumn)
	}
	return idx, nil
}

// field devuelve la celda i o "" si la fila es más corta que la cabecera.
func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// skipBOM descarta el BOM UTF-8 que añaden algunas exportaciones de planilla.
func skipBOM(br *bufio.Reader) {
	b, err := br.Peek(3)
	if err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}
}
