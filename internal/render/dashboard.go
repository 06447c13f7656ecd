package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/farxc/sil_dashboard/internal/programacao"
	"github.com/farxc/sil_dashboard/internal/programacao/filter"
	"github.com/farxc/sil_dashboard/internal/programacao/metrics"
)

func (s Styles) tile(label string, count int, billingLabel string, billing float64) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		s.Label.Render(label),
		s.Value.Render(Int(count)),
		s.Label.Render(billingLabel),
		s.Value.Render(Money(billing)),
	)
	return s.Tile.Render(body)
}

// KPITiles renders the received, cancelled and served tiles side by side.
func KPITiles(k metrics.KPIs, s Styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.tile("Programações Recebidas", k.TotalSchedules, "Faturamento Estimado", k.BillingTotal),
		s.tile("Programações Canceladas", k.CancelledSchedules, "Faturamento Cancelado", k.BillingCancelled),
		s.tile("Programações Atendidas", k.ServedSchedules, "Faturamento Atendido", k.BillingServed),
	)
}

func Banners(k metrics.KPIs, s Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Warning.Render(fmt.Sprintf("%s programações atrasadas.", Int(k.LateSchedules))),
		s.Danger.Render("Penalização: "+Money(k.Penalty)),
	)
}

func selectionLine(sel filter.Selection) string {
	year, month := filter.All, filter.All
	if sel.Year != 0 {
		year = fmt.Sprint(sel.Year)
	}
	if sel.Month != 0 {
		month = fmt.Sprint(sel.Month)
	}
	return fmt.Sprintf("Região: %s  Filial: %s  Filtro: %s  Ano: %s  Mês: %s",
		orAll(sel.Region), orAll(sel.Branch), sel.Mode, year, month)
}

func orAll(v string) string {
	if v == "" {
		return filter.All
	}
	return v
}

func countTable(title, keyHeader string, counts []metrics.Count) *Table {
	t := NewTable(title, keyHeader, "Quantidade")
	for _, c := range counts {
		t.AddRow(c.Key, Int(c.Count))
	}
	return t
}

// Dashboard renders every widget of d in display order.
func Dashboard(d *programacao.Dashboard, s Styles) string {
	var sb strings.Builder
	section := func(parts ...string) {
		for _, p := range parts {
			if p == "" {
				continue
			}
			sb.WriteString(p)
			sb.WriteString("\n")
		}
	}

	section(s.Label.Render(selectionLine(d.Selection)))
	if d.Filters.Window != nil {
		section(s.Label.Render(fmt.Sprintf("Período: %s a %s",
			d.Filters.Window.Start.Format("02/01/2006 15:04:05"),
			d.Filters.Window.End.Format("02/01/2006 15:04:05"))))
	}
	section(KPITiles(d.KPIs, s), Banners(d.KPIs, s))

	if len(d.Monthly) > 0 {
		t := NewTable("Faturamento Mensal", "Ano", "Mês", "Total", "Atendido", "Cancelado")
		for _, m := range d.Monthly {
			t.AddRow(fmt.Sprint(m.Year), m.MonthName, Money(m.Total), Money(m.Served), Money(m.Cancelled))
		}
		section(t.View(s))
	}
	if len(d.ScheduleTypes) > 0 {
		section(countTable("Tipos de Operação", "Tipo", d.ScheduleTypes).View(s))
	}
	if len(d.Punctuality) > 0 {
		section(countTable("Pontualidade", "Situação", d.Punctuality).View(s))
	}
	if len(d.BranchShare) > 0 {
		t := NewTable("Atendimento por Filial", "Filial", "Faturamento", "Participação")
		for _, b := range d.BranchShare {
			t.AddRow(b.Branch, Money(b.Billing), Percent(b.Percentage))
		}
		section(t.View(s))
	}
	if len(d.LateByBranch) > 0 {
		section(countTable("Atrasos por Filial", "Filial", d.LateByBranch).View(s))
	}

	for _, w := range d.Warnings {
		section(s.Warning.Render("! " + w.Text))
	}
	for _, n := range d.Notices {
		section(s.Notice.Render(n.Text))
	}
	return sb.String()
}
