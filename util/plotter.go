package util

import (
	"fmt"
	"io"

	"xnova-server/models/venue"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// emptyBar is how echarts marks a gap in a series.
const emptyBar = "-"

// RenderAvailabilityChart writes an HTML page with a bar chart of the venue's
// effective slot prices on date, split into open and booked slots.
func RenderAvailabilityChart(w io.Writer, v venue.Venue, date string) error {
	slots := v.AvailabilityFor(date)

	times := make([]string, 0, len(slots))
	open := make([]opts.BarData, 0, len(slots))
	booked := make([]opts.BarData, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
		price := v.EffectivePrice(s)
		if s.IsAvailable {
			open = append(open, opts.BarData{Name: s.Time, Value: price})
			booked = append(booked, opts.BarData{Name: s.Time, Value: emptyBar})
		} else {
			open = append(open, opts.BarData{Name: s.Time, Value: emptyBar})
			booked = append(booked, opts.BarData{Name: s.Time, Value: price})
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Availability",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    v.VenueName,
			Subtitle: fmt.Sprintf("%s - %d/%d slots open", date, countOpen(slots), len(slots)),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(times).
		AddSeries("open", open, charts.WithBarChartOpts(opts.BarChart{Stack: "slots"})).
		AddSeries("booked", booked, charts.WithBarChartOpts(opts.BarChart{Stack: "slots"}))

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render availability chart for venue %s: %w", v.VenueID, err)
	}
	return nil
}

func countOpen(slots []venue.TimeSlot) int {
	n := 0
	for _, s := range slots {
		if s.IsAvailable {
			n++
		}
	}
	return n
}
