package translator

import (
	"errors"

	"github.com/google/uuid"
	"github.com/graang/graang/internal/model"
)

// ErrEmptyDashboard is returned when a dashboard has no widgets to
// convert. It is the only fatal conversion error; everything else
// degrades to placeholders.
var ErrEmptyDashboard = errors.New("dashboard contains no widgets")

// defaultDashboardTitle is used when the source dashboard has no title.
const defaultDashboardTitle = "Untitled Dashboard"

// assemble converts a normalized dashboard into a board plus its
// conversion report. Panels receive sequential 1-based ids in flattened
// widget order.
func assemble(d *model.Dashboard, opts Options) (*model.Board, *Report, error) {
	widgets := d.FlattenedWidgets()
	if len(widgets) == 0 {
		return nil, nil, ErrEmptyDashboard
	}

	board := newBoard(d.Title, opts)
	mapper := newWidgetMapper(opts.Datasource, d.LayoutType)
	report := &Report{}

	for i, w := range widgets {
		panel, outcome, notes := mapper.Map(i+1, w)
		board.Panels = append(board.Panels, panel)
		report.add(outcome)
		for _, n := range notes {
			report.note(n)
		}
	}

	board.Templating = transformVariables(d.TemplateVariables, opts.Datasource)

	return board, report, nil
}

// newBoard builds the board skeleton every conversion starts from.
func newBoard(title string, opts Options) *model.Board {
	if title == "" {
		title = defaultDashboardTitle
	}

	return &model.Board{
		UID:           newUID(),
		Title:         title,
		Tags:          []string{model.ConvertedTag},
		Timezone:      model.DefaultTimezone,
		SchemaVersion: model.GrafanaSchemaVersion,
		Version:       1,
		Refresh:       opts.Refresh,
		Time:          model.TimeRange{From: opts.TimeFrom, To: opts.TimeTo},
		Panels:        []model.Panel{},
		Annotations:   model.BuiltInAnnotations(),
	}
}

// newUID returns a short random dashboard uid. This is the only field
// that differs between two conversions of the same source.
func newUID() string {
	return uuid.NewString()[:8]
}
