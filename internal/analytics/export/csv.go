package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/libreta-app/libreta/internal/analytics"
)

// WriteDashboardCSV serialises the dashboard metrics and series into a
// single CSV document.
func WriteDashboardCSV(w io.Writer, dash analytics.Dashboard) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Métrica", "Valor"}); err != nil {
		return err
	}
	records := [][]string{
		{"Desde", dash.From},
		{"Hasta", dash.To},
		{"Ventas", strconv.Itoa(dash.Summary.Count)},
		{"Total vendido", formatFloat(dash.Summary.Total)},
		{"Ganancia", formatFloat(dash.Summary.Profit)},
		{"Cobrado", formatFloat(dash.Summary.AmountPaid)},
		{"Por cobrar", formatFloat(dash.Summary.PendingAmount)},
		{"Ganancia diaria promedio", formatFloat(dash.AverageDailyProfit)},
		{"Ticket promedio", formatFloat(dash.AverageTicket)},
		{"Gasto operativo", formatFloat(dash.Cashflow.OperatingExpenseTotal)},
		{"Reinversión", formatFloat(dash.Cashflow.ReinvestmentTotal)},
		{"Balance neto", formatFloat(dash.Cashflow.Net)},
		{"Meta de ahorro", formatFloat(dash.Cashflow.SavingsTarget)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	if err := writeSeries(writer, "Producto", "Ganancia", dash.TopProducts); err != nil {
		return err
	}
	if err := writeSeries(writer, "Semana", "Ganancia", dash.ProfitByWeek); err != nil {
		return err
	}
	if len(dash.ProfitByUser) > 0 {
		if err := writeSeries(writer, "Usuario", "Ganancia", dash.ProfitByUser); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeSeries(writer *csv.Writer, labelHeader, valueHeader string, points []analytics.SeriesPoint) error {
	if err := writer.Write([]string{labelHeader, valueHeader}); err != nil {
		return err
	}
	for _, p := range points {
		if err := writer.Write([]string{p.Label, formatFloat(p.Value)}); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
