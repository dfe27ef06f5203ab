package calendar

import (
	"fmt"
	"time"

	"github.com/ivanoskov/calendar_bot/internal/model"
)

// MaxBadges — сколько задач показываем в ячейке дня, остальное прячется
// за индикатором переполнения
const MaxBadges = 4

// Cell — одна ячейка месячной сетки. Day == 0 означает пустую ячейку
// выравнивания перед первым числом месяца.
type Cell struct {
	Day   int
	Key   string
	Todos []model.Todo // не более MaxBadges
	More  bool         // в этот день есть еще задачи сверх лимита
	Total int
}

// Grid — месячная сетка с понедельника. Month хранится с нуля,
// как пришло из навигации календаря.
type Grid struct {
	Year  int
	Month int
	Cells []Cell
}

// MonthGrid строит сетку месяца: ведущие пустые ячейки до понедельника,
// затем по ячейке на каждый день месяца. Чистая функция, byDate дает
// задачи дня (может быть nil).
func MonthGrid(year, month0 int, byDate func(key string) []model.Todo) Grid {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	// воскресенье=0 у time.Weekday, сетка начинается с понедельника
	lead := (int(first.Weekday()) + 6) % 7
	// нулевой день следующего месяца — последний день текущего
	days := time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]Cell, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= days; day++ {
		key := fmt.Sprintf("%04d-%02d-%02d", year, month0+1, day)
		cell := Cell{Day: day, Key: key}
		if byDate != nil {
			todos := byDate(key)
			cell.Total = len(todos)
			if len(todos) > MaxBadges {
				cell.Todos = todos[:MaxBadges]
				cell.More = true
			} else {
				cell.Todos = todos
			}
		}
		cells = append(cells, cell)
	}
	return Grid{Year: year, Month: month0, Cells: cells}
}
