package chart

import (
	"encoding/json"
	"fmt"

	"statgraft/internal/model"
)

// DefaultScriptURL is the chart-library bootstrap loaded by the embed
const DefaultScriptURL = "https://cdn.jsdelivr.net/npm/chart.js@3.9.1/dist/chart.min.js"

// Color palettes match the site's existing embeds.
var (
	beforeFill   = "rgba(239, 68, 68, 0.8)"
	beforeBorder = "rgba(239, 68, 68, 1)"
	afterFill    = "rgba(34, 197, 94, 0.8)"
	afterBorder  = "rgba(34, 197, 94, 1)"

	metricFills = []string{
		"rgba(99, 102, 241, 0.8)",
		"rgba(139, 92, 246, 0.8)",
		"rgba(168, 85, 247, 0.8)",
		"rgba(236, 72, 153, 0.8)",
		"rgba(251, 146, 60, 0.8)",
	}
	metricBorders = []string{
		"rgba(99, 102, 241, 1)",
		"rgba(139, 92, 246, 1)",
		"rgba(168, 85, 247, 1)",
		"rgba(236, 72, 153, 1)",
		"rgba(251, 146, 60, 1)",
	}
)

// chartData is the client-side chart-library data object
type chartData struct {
	Labels   []any     `json:"labels"`
	Datasets []dataset `json:"datasets"`
}

type dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor"`
	BorderColor     any       `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
}

// Markdown renders the embed block for one chart: a container div, the
// canvas, and a bootstrap script that lazy-loads the chart library from
// scriptURL. The block is self-contained so splicing it between two blank
// lines leaves the rest of the document untouched.
func Markdown(c model.Chart, scriptURL string) string {
	if scriptURL == "" {
		scriptURL = DefaultScriptURL
	}

	data, err := json.MarshalIndent(buildData(c), "", "  ")
	if err != nil {
		data = []byte(`{"labels":[],"datasets":[]}`)
	}

	legend := "false"
	if c.Group == model.GroupBeforeAfter {
		legend = "true"
	}

	valueAxis := "y"
	if c.Shape == model.ShapeHorizontalBar {
		valueAxis = "x"
	}

	return fmt.Sprintf(`<div class="chart-container" style="position: relative; height: 400px; margin: 2rem 0;">
  <canvas id="%s"></canvas>
</div>

<script>
(function() {
  if (typeof Chart === 'undefined') {
    const script = document.createElement('script');
    script.src = '%s';
    script.onload = initChart;
    document.head.appendChild(script);
  } else {
    initChart();
  }

  function initChart() {
    const ctx = document.getElementById('%s');
    if (!ctx) return;

    new Chart(ctx.getContext('2d'), {
      type: '%s',
      data: %s,
      options: {
        responsive: true,
        maintainAspectRatio: false,
        plugins: {
          title: {
            display: true,
            text: '%s',
            font: { size: 18, weight: 'bold' }
          },
          legend: {
            display: %s
          }
        },
        scales: {
          %s: {
            beginAtZero: true,
            ticks: {
              callback: function(value) {
                return value + '%s';
              }
            }
          }
        }
      }
    });
  }
})();
</script>`, c.ID, scriptURL, c.ID, c.Shape, data, escapeSingleQuotes(c.Title), legend, valueAxis, tickSuffix(c))
}

// buildData assembles the data object with the palette for the shape
func buildData(c model.Chart) chartData {
	data := chartData{}

	if c.Group == model.GroupBeforeAfter {
		for _, label := range c.Labels {
			// Two-line label: metric name over the comparison hint.
			data.Labels = append(data.Labels, []string{label, "Before → After"})
		}
		for _, s := range c.Series {
			fill, border := afterFill, afterBorder
			if s.Label == "Before" {
				fill, border = beforeFill, beforeBorder
			}
			data.Datasets = append(data.Datasets, dataset{
				Label:           s.Label,
				Data:            s.Data,
				BackgroundColor: fill,
				BorderColor:     border,
				BorderWidth:     2,
			})
		}
		return data
	}

	for _, label := range c.Labels {
		data.Labels = append(data.Labels, label)
	}
	for _, s := range c.Series {
		n := len(s.Data)
		data.Datasets = append(data.Datasets, dataset{
			Label:           s.Label,
			Data:            s.Data,
			BackgroundColor: cycle(metricFills, n),
			BorderColor:     cycle(metricBorders, n),
			BorderWidth:     2,
		})
	}
	return data
}

// tickSuffix appends a percent sign to axis ticks when the leading value
// looks percentage-scale. Cost charts with small leading values get the
// suffix too; the heuristic only inspects the first data point.
func tickSuffix(c model.Chart) string {
	if len(c.Series) > 0 && len(c.Series[0].Data) > 0 && c.Series[0].Data[0] < 100 {
		return "%"
	}
	return ""
}

// cycle repeats a palette to cover n bars
func cycle(palette []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

func escapeSingleQuotes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
