package engine

import (
	"github.com/leengari/minidb/internal/domain/errors"
	"github.com/leengari/minidb/internal/metrics"
	"github.com/leengari/minidb/internal/request"
)

// unparsedKind labels requests whose text did not parse
const unparsedKind = "unknown"

// MetricsObserver feeds request outcomes into the Prometheus collectors
type MetricsObserver struct{}

func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent implements the Observer interface
func (mo *MetricsObserver) OnEvent(event Event) {
	switch event.Type {
	case EventParseError:
		metrics.RequestsTotal.WithLabelValues(unparsedKind, "syntax_error").Inc()

	case EventExecError:
		metrics.RequestsTotal.WithLabelValues(string(event.Kind), errors.Kind(event.Err)).Inc()
		metrics.RequestDuration.WithLabelValues(string(event.Kind)).Observe(event.Duration.Seconds())

	case EventExecEnd:
		metrics.RequestsTotal.WithLabelValues(string(event.Kind), "ok").Inc()
		metrics.RequestDuration.WithLabelValues(string(event.Kind)).Observe(event.Duration.Seconds())

		res := event.Result
		if res == nil {
			return
		}
		switch res.Kind {
		case request.KindCreateTable:
			metrics.TableRows.WithLabelValues(res.Table).Set(0)
		case request.KindInsert:
			metrics.TableRows.WithLabelValues(res.Table).Inc()
		case request.KindSelect:
			metrics.ScansTotal.WithLabelValues(res.ScanType).Inc()
			metrics.RowsReturned.Add(float64(len(res.Rows)))
		}
	}
}
