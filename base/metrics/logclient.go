package metrics

import (
	"github.com/x-xyz/metagen/base/log"
)

// LogClient writes every metric to the debug log. It is used when no datadog agent
// is configured, typically for local runs of the generator.
type LogClient struct{}

func (lc *LogClient) log(kind, name string, value interface{}, tags []string) {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric " + kind)
}

// Gauge measure the value of a particular thing at a particular time
func (lc *LogClient) Gauge(name string, value float64, tags []string, rate float64) error {
	lc.log("gauge", name, value, tags)
	return nil
}

// Count tracks how many times something happened
func (lc *LogClient) Count(name string, value int64, tags []string, rate float64) error {
	lc.log("count", name, value, tags)
	return nil
}

// Histogram tracks the statistical distribution of a set of values
func (lc *LogClient) Histogram(name string, value float64, tags []string, rate float64) error {
	lc.log("histogram", name, value, tags)
	return nil
}

// TimeInMilliseconds is a histogram of durations
func (lc *LogClient) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	lc.log("time", name, value, tags)
	return nil
}
