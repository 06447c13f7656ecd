package converter

import (
	"github.com/farxc/sil_dashboard/internal/programacao/types"
	"github.com/farxc/sil_dashboard/internal/programacao/utils"
	"github.com/go-gota/gota/dataframe"
)

// DfToSchedules converts every row of an enriched frame. Columns are read once
// instead of per cell.
func DfToSchedules(df dataframe.DataFrame) []types.Schedule {
	ids := utils.ColumnValues(&df, types.ColScheduleID)
	statuses := utils.ColumnValues(&df, types.ColStatus)
	deadlines := utils.ColumnValues(&df, types.ColDeadlineStatus)
	forecasts := utils.ColumnValues(&df, types.ColServiceStartForecast)
	taxIDs := utils.ColumnValues(&df, types.ColCarrierTaxID)
	scheduleTypes := utils.ColumnValues(&df, types.ColScheduleType)
	branches := utils.ColumnValues(&df, types.ColBranch)
	regions := utils.ColumnValues(&df, types.ColRegion)

	out := make([]types.Schedule, df.Nrow())
	for i := range out {
		out[i] = types.Schedule{
			ScheduleID:           ids[i],
			Status:               statuses[i],
			DeadlineStatus:       deadlines[i],
			ServiceStartForecast: utils.ParseForecast(forecasts[i]),
			CarrierTaxID:         taxIDs[i],
			ScheduleType:         scheduleTypes[i],
			Branch:               branches[i],
			Region:               regions[i],
		}
	}
	return out
}
