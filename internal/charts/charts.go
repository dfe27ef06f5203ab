package charts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ivanoskov/calendar_bot/internal/service"
)

// ChartGenerator генерирует графики для статистики месяца
type ChartGenerator struct{}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// GenerateCategoryPieChart создает круговую диаграмму распределения задач
// по категориям. Возвращает nil без ошибки, если рисовать нечего.
func (g *ChartGenerator) GenerateCategoryPieChart(stats *service.MonthStats) ([]byte, error) {
	if stats == nil || len(stats.Categories) == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(stats.Categories))
	for _, cc := range stats.Categories {
		if cc.Count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %d", cc.Name, cc.Count),
			Value: float64(cc.Count),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
				FillColor: categoryFill(cc.Color),
			},
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:  fmt.Sprintf("Задачи по категориям — %s", stats.Period),
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	err := pie.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("failed to render category pie chart: %w", err)
	}

	return buffer.Bytes(), nil
}

// GenerateProgressChart создает столбчатую диаграмму выполнено/осталось
func (g *ChartGenerator) GenerateProgressChart(stats *service.MonthStats) ([]byte, error) {
	if stats == nil || stats.Total == 0 {
		return nil, nil
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Прогресс — %s", stats.Period),
		Width:    600,
		Height:   400,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		Bars: []chart.Value{
			{
				Label: fmt.Sprintf("Выполнено (%d)", stats.Done),
				Value: float64(stats.Done),
				Style: chart.Style{
					FillColor:   chart.ColorGreen,
					StrokeColor: chart.ColorGreen,
				},
			},
			{
				Label: fmt.Sprintf("Осталось (%d)", stats.Total-stats.Done),
				Value: float64(stats.Total - stats.Done),
				Style: chart.Style{
					FillColor:   chart.ColorRed,
					StrokeColor: chart.ColorRed,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	err := graph.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("failed to render progress chart: %w", err)
	}

	return buffer.Bytes(), nil
}

// categoryFill переводит hex-цвет категории в цвет заливки сектора
func categoryFill(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return chart.ColorAlternateGray
	}
	return drawing.ColorFromHex(hex)
}
