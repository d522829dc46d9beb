package ledger

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{
	"Fecha", "Cliente", "Producto", "Cantidad", "Precio unidad",
	"Total", "Ganancia", "Estado", "Pagado", "Pendiente", "Tipo pago", "Comentario",
}

// WriteCSV streams the entries as a CSV document.
func WriteCSV(w io.Writer, entries []SaleEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		estado := "Pagado"
		if e.Status == StatusPending {
			estado = "Pendiente"
		}
		row := []string{
			e.Date.Format(dayLayout),
			e.ClientName,
			e.ProductName,
			strconv.Itoa(e.Quantity),
			money(e.PricePerUnit),
			money(e.Total),
			money(e.Profit),
			estado,
			money(e.AmountPaid),
			money(e.PendingAmount),
			e.PaymentType,
			e.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
