package types

import "time"

// Column headers of the SIL Log-In "programações" export.
const (
	ColServiceStartForecast = "Previsão início atendimento (BRA)"
	ColCarrierTaxID         = "CNPJ Transportadora"
	ColScheduleID           = "Número da programação"
	ColStatus               = "Situação programação"
	ColDeadlineStatus       = "Situação prazo programação"
	ColScheduleType         = "Tipo de programação"

	// Derived during enrichment.
	ColBranch = "Filial"
	ColRegion = "Região"
)

// RequiredColumns lists the headers every export is expected to carry.
var RequiredColumns = []string{
	ColServiceStartForecast,
	ColCarrierTaxID,
	ColScheduleID,
	ColStatus,
	ColDeadlineStatus,
	ColScheduleType,
}

const (
	StatusCancelled = "CANCELADA"
	DeadlineLate    = "Atrasado"
	DeadlineOnTime  = "No prazo"

	// PenaltyRate is applied over served billing.
	PenaltyRate = 0.02

	// ForecastLayout is the timestamp layout of ColServiceStartForecast.
	ForecastLayout = "02/01/2006 15:04:05"
)

// MonthNames are the Portuguese month labels used by the dashboard, January first.
var MonthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Schedule is one row of the merged export. Empty strings and the zero time
// stand for null cells.
type Schedule struct {
	ScheduleID           string    `json:"schedule_id"`
	Status               string    `json:"status"`
	DeadlineStatus       string    `json:"deadline_status"`
	ServiceStartForecast time.Time `json:"service_start_forecast"`
	CarrierTaxID         string    `json:"carrier_tax_id"`
	ScheduleType         string    `json:"schedule_type"`
	Branch               string    `json:"branch"`
	Region               string    `json:"region"`
}

func (s Schedule) HasID() bool {
	return s.ScheduleID != ""
}

func (s Schedule) IsCancelled() bool {
	return s.Status == StatusCancelled
}

func (s Schedule) IsLate() bool {
	return s.DeadlineStatus == DeadlineLate
}

func (s Schedule) HasForecast() bool {
	return !s.ServiceStartForecast.IsZero()
}
