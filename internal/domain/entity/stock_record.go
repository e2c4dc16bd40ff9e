package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa una fila del snapshot de distribución: el estoque de un
// medicamento (produto) en una unidad de salud, con el distrito sanitario al que pertenece.
// No hay clave única: varias filas pueden compartir (unidad, producto) y se suman.
type StockRecord struct {
	Unit     string          // unidade
	District string          // distrito
	Product  string          // produto
	Quantity decimal.Decimal // quantidade normalizada (coma decimal -> punto)
}

// StockTable es el snapshot completo cargado al arrancar. Inmutable tras su construcción:
// Records devuelve siempre una copia.
type StockTable struct {
	SnapshotID string
	Source     string // ruta del CSV o tabla de origen
	LoadedAt   time.Time
	records    []StockRecord
}

// NewStockTable construye el snapshot copiando los registros recibidos.
func NewStockTable(snapshotID, source string, loadedAt time.Time, records []StockRecord) *StockTable {
	cp := make([]StockRecord, len(records))
	copy(cp, records)
	return &StockTable{
		SnapshotID: snapshotID,
		Source:     source,
		LoadedAt:   loadedAt,
		records:    cp,
	}
}

// Records devuelve una copia de los registros del snapshot.
func (t *StockTable) Records() []StockRecord {
	cp := make([]StockRecord, len(t.records))
	copy(cp, t.records)
	return cp
}

// Len número de registros del snapshot.
func (t *StockTable) Len() int { return len(t.records) }
