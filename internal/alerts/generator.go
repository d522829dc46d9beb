package alerts

import (
	"fmt"
	"time"

	"github.com/libreta-app/libreta/internal/ledger"
	"github.com/libreta-app/libreta/internal/shared"
)

// Level grades an alert's urgency.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Alert is one rendered notification.
type Alert struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// DefaultHorizonDays is how far ahead the upcoming-payment window looks.
const DefaultHorizonDays = 7

// Config holds the alerting knobs. A nil WeeklyProfitMin disables the
// weekly-profit floor alert.
type Config struct {
	HorizonDays     int
	WeeklyProfitMin *float64
}

func (c Config) horizon() int {
	if c.HorizonDays > 0 {
		return c.HorizonDays
	}
	return DefaultHorizonDays
}

// Outlook is the scan result over the pending backlog: what is already
// late and what falls due inside the horizon. A sale is never in both.
type Outlook struct {
	Overdue       []ledger.SaleEntry `json:"overdue"`
	Upcoming      []ledger.SaleEntry `json:"upcoming"`
	OverdueTotal  float64            `json:"overdue_total"`
	UpcomingTotal float64            `json:"upcoming_total"`
}

// ScanPayments splits the pending entries by due date relative to
// today. Entries without a due date are ignored; dates are compared at
// day granularity.
func ScanPayments(cfg Config, pending []ledger.SaleEntry, today time.Time) Outlook {
	day := truncateDay(today)
	limit := day.AddDate(0, 0, cfg.horizon())

	var o Outlook
	for _, e := range pending {
		if e.Status != ledger.StatusPending || e.DueDate == nil {
			continue
		}
		due := truncateDay(*e.DueDate)
		switch {
		case due.Before(day):
			o.Overdue = append(o.Overdue, e)
			o.OverdueTotal += e.PendingAmount
		case !due.After(limit):
			o.Upcoming = append(o.Upcoming, e)
			o.UpcomingTotal += e.PendingAmount
		}
	}
	return o
}

// Generate renders the notification list for an outlook plus the
// trailing seven-day profit. No alert is emitted for an empty bucket.
func Generate(cfg Config, outlook Outlook, weekProfit float64) []Alert {
	var out []Alert
	if n := len(outlook.Overdue); n > 0 {
		out = append(out, Alert{
			Level:   LevelDanger,
			Title:   "Pagos vencidos",
			Message: fmt.Sprintf("Tienes %d pago(s) vencido(s) por un total de %s.", n, shared.FormatMoney(outlook.OverdueTotal)),
		})
	}
	if n := len(outlook.Upcoming); n > 0 {
		out = append(out, Alert{
			Level:   LevelWarning,
			Title:   "Pagos por vencer",
			Message: fmt.Sprintf("Tienes %d pago(s) que vencen en los próximos %d días por %s.", n, cfg.horizon(), shared.FormatMoney(outlook.UpcomingTotal)),
		})
	}
	if cfg.WeeklyProfitMin != nil && weekProfit < *cfg.WeeklyProfitMin {
		out = append(out, Alert{
			Level:   LevelWarning,
			Title:   "Ganancia semanal baja",
			Message: fmt.Sprintf("La ganancia de los últimos 7 días (%s) está por debajo de la meta de %s.", shared.FormatMoney(weekProfit), shared.FormatMoney(*cfg.WeeklyProfitMin)),
		})
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
