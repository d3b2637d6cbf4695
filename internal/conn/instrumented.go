package conn

import (
	"context"

	"athena-dialect/internal/metrics"
)

// InstrumentedConnection records query counts and latencies for the
// connection it wraps. Errors pass through untouched.
type InstrumentedConnection struct {
	next      Connection
	collector metrics.Collector
}

// Instrumented wraps c so every Execute is recorded on collector.
func Instrumented(c Connection, collector metrics.Collector) *InstrumentedConnection {
	return &InstrumentedConnection{next: c, collector: collector}
}

func (c *InstrumentedConnection) SchemaName() string { return c.next.SchemaName() }

func (c *InstrumentedConnection) Execute(ctx context.Context, query string) ([]Row, error) {
	timer := c.collector.StartTimer("query_duration_seconds")
	rows, err := c.next.Execute(ctx, query)
	c.collector.RecordHistogram("query_duration_seconds", timer.Stop())

	status := "ok"
	if err != nil {
		status = "error"
	}
	c.collector.IncrementCounter("queries_total", "status", status)
	if err == nil {
		c.collector.RecordGauge("last_query_rows", float64(len(rows)))
	}
	return rows, err
}

var _ Connection = (*InstrumentedConnection)(nil)
