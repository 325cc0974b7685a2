package analytics

import (
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/utils"
)

// MonthLabels places a short month name above the first column in which
// each month's days start to appear.
func MonthLabels(grid models.Grid) []models.MonthLabel {
	var labels []models.MonthLabel
	var lastMonth time.Month // zero means nothing emitted yet

	for col := 0; col < constants.GridCols; col++ {
		for row := 0; row < constants.GridRows; row++ {
			cell := grid[row][col]
			if cell == nil {
				continue
			}
			day, err := utils.ParseDateKey(cell.DateKey)
			if err != nil {
				continue
			}
			if day.Month() != lastMonth {
				labels = append(labels, models.MonthLabel{
					Label: day.Month().String()[:3],
					Col:   col,
				})
				lastMonth = day.Month()
			}
			break
		}
	}
	return labels
}
