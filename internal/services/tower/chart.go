package tower

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cmai/strata/internal/models"
)

// RenderChart renders a PNG stacked bar chart of the given options' towers,
// one bar per option, one segment per layer band (quota-share participants
// collapse into a single shared segment). Our layer renders blue, other
// carriers gray. Returns raw PNG bytes.
func (s *Service) RenderChart(options []*models.QuoteOption) ([]byte, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("need at least 1 option to chart, got 0")
	}

	oursColor := drawing.ColorFromHex("2563eb")  // blue-600
	otherColor := drawing.ColorFromHex("9ca3af") // gray-400

	bars := make([]chart.StackedBar, 0, len(options))
	for _, option := range options {
		if option == nil || len(option.Tower) == 0 {
			continue
		}

		var values []chart.Value
		for i := 0; i < len(option.Tower); {
			layer := option.Tower[i]
			width := layer.Limit
			ours := layer.MatchesCarrier(s.marker)
			label := layer.Carrier

			if qs := layer.QuotaShare; qs > 0 {
				width = qs
				label = fmt.Sprintf("%s po", models.FormatMoney(qs))
				j := i
				for j < len(option.Tower) && option.Tower[j].QuotaShare == qs {
					if option.Tower[j].MatchesCarrier(s.marker) {
						ours = true
					}
					j++
				}
				i = j
			} else {
				i++
			}

			color := otherColor
			if ours {
				color = oursColor
			}
			values = append(values, chart.Value{
				Label: label,
				Value: width,
				Style: chart.Style{FillColor: color, StrokeColor: color},
			})
		}
		if len(values) == 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{
			Name:   s.DisplayName(option),
			Values: values,
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no options with towers to chart")
	}

	graph := chart.StackedBarChart{
		Title:  "Tower Comparison",
		Width:  220 * len(bars),
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.Style{},
		YAxis: chart.Style{},
		Bars:  bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
