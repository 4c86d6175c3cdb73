/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"os"
	"time"

	"github.com/x-xyz/metagen/base/log"
)

const (
	// ddRate is the rate to pass metrics to datadog agent. 1 means always
	ddRate = 1
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// StatsClient is the subset of the statsd client used here. LogClient implements it too.
type StatsClient interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	tags []string
}

// WithTags adds constant tags given as key, value pairs
func WithTags(kvs ...string) Option {
	return func(o *opt) {
		o.tags = append(o.tags, parseTag(kvs)...)
	}
}

// New creates a metric client with package name as prefix
func New(pkgName string, client StatsClient, options ...Option) Service {
	o := opt{
		tags: hostTags(),
	}
	for _, option := range options {
		option(&o)
	}
	return &Metrics{
		pkgName: pkgName,
		client:  client,
		tags:    o.tags,
	}
}

// hostTags tags metrics with the machine name, and with nothing when it is unknown.
func hostTags() []string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return []string{}
	}
	return []string{"host:" + host}
}

type Metrics struct {
	pkgName string
	client  StatsClient
	tags    []string
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + `.` + key
}

func (mt *Metrics) allTags(tags []string) []string {
	res := make([]string, 0, len(mt.tags)+len(tags)/2)
	res = append(res, mt.tags...)
	return append(res, parseTag(tags)...)
}

func (mt *Metrics) report(fn string, key string, err error) {
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "func": fn}).Error("Bump fail")
	}
}

func (mt *Metrics) recoverPanic(fn string, key string) {
	if p := recover(); p != nil {
		log.Log().WithFields(log.Fields{"panic": p, "key": key, "func": fn}).Error("Bump panic")
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverPanic("BumpAvg", key)
	mt.report("BumpAvg", key, mt.client.Gauge(mt.key(key), val, mt.allTags(tags), ddRate))
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverPanic("BumpSum", key)
	mt.report("BumpSum", key, mt.client.Count(mt.key(key), int64(val), mt.allTags(tags), ddRate))
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverPanic("BumpHistogram", key)
	mt.report("BumpHistogram", key, mt.client.Histogram(mt.key(key), val, mt.allTags(tags), ddRate))
}

// BumpTime starts a timer and returns a value on which End() stops it:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		end: func(d time.Duration) {
			defer mt.recoverPanic("BumpTime", key)
			msec := float64(d) / float64(time.Millisecond)
			mt.report("BumpTime", key, mt.client.TimeInMilliseconds(mt.key(key), msec, mt.allTags(tags), ddRate))
		},
	}
}

type timeTracker struct {
	start time.Time
	end   func(time.Duration)
}

func (t *timeTracker) End() {
	t.end(time.Since(t.start))
}

func parseTag(tags []string) []string {
	if tags == nil {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}
