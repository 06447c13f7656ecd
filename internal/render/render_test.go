package render

import (
	"strings"
	"testing"

	"github.com/farxc/sil_dashboard/internal/programacao"
	"github.com/farxc/sil_dashboard/internal/programacao/filter"
	"github.com/farxc/sil_dashboard/internal/programacao/metrics"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "R$ 3.850,00", Money(3850))
	assert.Equal(t, "R$ 47,00", Money(47))
	assert.Equal(t, "R$ 0,00", Money(0))
	assert.Equal(t, "1.250", Int(1250))
}

func TestTable(t *testing.T) {
	tbl := NewTable("Atrasos por Filial", "Filial", "Quantidade")
	tbl.AddRow("SMX MTZ", "2")
	tbl.AddRow("SMX FOR", "10")

	out := tbl.View(DefaultStyles())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Atrasos por Filial")
	assert.Contains(t, lines[1], "Filial")
	assert.Contains(t, lines[3], "SMX MTZ")
	assert.Contains(t, lines[4], "10")
}

func TestDashboard(t *testing.T) {
	d := &programacao.Dashboard{
		Selection: filter.DefaultSelection(),
		KPIs: metrics.KPIs{
			TotalSchedules: 3, CancelledSchedules: 1, ServedSchedules: 2, LateSchedules: 1,
			BillingTotal: 3850, BillingCancelled: 1500, BillingServed: 2350, Penalty: 47,
		},
		BranchShare:  []metrics.BranchShare{{Branch: "SMX MTZ", Billing: 3000, Percentage: 77.92}},
		LateByBranch: []metrics.Count{{Key: "SMX FOR", Count: 1}},
		Notices:      []programacao.Message{{Widget: programacao.WidgetPunctuality, Text: "sem dados"}},
	}

	out := Dashboard(d, DefaultStyles())
	for _, want := range []string{
		"Programações Recebidas",
		"R$ 3.850,00",
		"R$ 2.350,00",
		"1 programações atrasadas.",
		"Penalização: R$ 47,00",
		"Atendimento por Filial",
		"77,9%",
		"Atrasos por Filial",
		"sem dados",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Faturamento Mensal")
}

func TestDashboard_MonthlyColumns(t *testing.T) {
	d := &programacao.Dashboard{
		Selection: filter.DefaultSelection(),
		Monthly: []metrics.MonthlyBilling{
			{Year: 2024, Month: 3, MonthName: "Março", Total: 3000, Served: 1500, Cancelled: 1500},
		},
	}

	out := Dashboard(d, DefaultStyles())
	var header, row string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "Ano"):
			header = line
		case strings.Contains(line, "Março"):
			row = line
		}
	}
	assert.Regexp(t, `Total.*Atendido.*Cancelado`, header)
	assert.Regexp(t, `R\$ 3\.000,00.*R\$ 1\.500,00.*R\$ 1\.500,00`, row)
}
