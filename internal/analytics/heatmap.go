package analytics

import (
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/utils"
)

// BuildGrid lays the trailing GridDays days onto a rows x cols matrix.
// Today sits in the last column at its weekday row and columns start on
// Sunday. Positions after today stay nil; the oldest days that would fall
// before column 0 are dropped.
func BuildGrid(now time.Time) models.Grid {
	var grid models.Grid
	todayDow := int(now.Weekday())
	last := (constants.GridCols - 1) * constants.GridRows

	for i := 0; i < constants.GridDays; i++ {
		pos := todayDow + last - i
		if pos < 0 {
			continue
		}
		col := pos / constants.GridRows
		row := pos % constants.GridRows
		if col >= constants.GridCols || row >= constants.GridRows {
			continue
		}
		grid[row][col] = &models.GridCell{
			DateKey: utils.DaysAgoKey(now, i),
			Row:     row,
			Col:     col,
		}
	}
	return grid
}
