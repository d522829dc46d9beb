package report

import (
	"bytes"
	"html/template"

	"github.com/libreta-app/libreta/internal/analytics"
	"github.com/libreta-app/libreta/internal/shared"
)

// DashboardDocument bundles the dashboard with pre-rendered charts so
// the PDF shows the same visuals as the web endpoints.
type DashboardDocument struct {
	Dashboard   analytics.Dashboard
	TopProducts template.HTML
	WeeklyChart template.HTML
	GeneratedAt string
}

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"money": shared.FormatMoney,
}).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Resumen del negocio</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #1f2933; margin: 32px; }
h1 { font-size: 20px; margin-bottom: 4px; }
h2 { font-size: 14px; margin-top: 24px; border-bottom: 1px solid #cbd2d9; padding-bottom: 4px; }
.period { color: #616e7c; font-size: 12px; }
table { border-collapse: collapse; width: 100%; margin-top: 8px; font-size: 12px; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #e4e7eb; }
td.num { text-align: right; }
.chart { margin-top: 12px; }
.footer { margin-top: 32px; font-size: 10px; color: #9aa5b1; }
</style>
</head>
<body>
<h1>Resumen del negocio</h1>
{{if .Dashboard.From}}<p class="period">Período: {{.Dashboard.From}} a {{.Dashboard.To}}</p>{{end}}

<h2>Ventas</h2>
<table>
<tr><td>Ventas registradas</td><td class="num">{{.Dashboard.Summary.Count}}</td></tr>
<tr><td>Total vendido</td><td class="num">${{money .Dashboard.Summary.Total}}</td></tr>
<tr><td>Ganancia</td><td class="num">${{money .Dashboard.Summary.Profit}}</td></tr>
<tr><td>Cobrado</td><td class="num">${{money .Dashboard.Summary.AmountPaid}}</td></tr>
<tr><td>Por cobrar</td><td class="num">${{money .Dashboard.Summary.PendingAmount}}</td></tr>
<tr><td>Ganancia diaria promedio</td><td class="num">${{money .Dashboard.AverageDailyProfit}}</td></tr>
<tr><td>Ticket promedio</td><td class="num">${{money .Dashboard.AverageTicket}}</td></tr>
</table>

<h2>Flujo de dinero</h2>
<table>
<tr><td>Gasto operativo</td><td class="num">${{money .Dashboard.Cashflow.OperatingExpenseTotal}}</td></tr>
<tr><td>Reinversión</td><td class="num">${{money .Dashboard.Cashflow.ReinvestmentTotal}}</td></tr>
<tr><td>Balance neto</td><td class="num">${{money .Dashboard.Cashflow.Net}}</td></tr>
<tr><td>Meta de ahorro</td><td class="num">${{money .Dashboard.Cashflow.SavingsTarget}}</td></tr>
<tr><td>Meta cumplida</td><td class="num">{{if .Dashboard.Cashflow.TargetMet}}Sí{{else}}No{{end}}</td></tr>
</table>

{{if .TopProducts}}
<h2>Productos con mayor ganancia</h2>
<div class="chart">{{.TopProducts}}</div>
{{end}}

{{if .WeeklyChart}}
<h2>Ganancia por semana</h2>
<div class="chart">{{.WeeklyChart}}</div>
{{end}}

{{if .Dashboard.ProfitByUser}}
<h2>Ganancia por usuario</h2>
<table>
<tr><th>Usuario</th><th class="num">Ganancia</th></tr>
{{range .Dashboard.ProfitByUser}}<tr><td>{{.Label}}</td><td class="num">${{money .Value}}</td></tr>
{{end}}</table>
{{end}}

<p class="footer">Generado el {{.GeneratedAt}}</p>
</body>
</html>`))

// RenderDashboardHTML produces the HTML document handed to Gotenberg.
func RenderDashboardHTML(doc DashboardDocument) (string, error) {
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
