package metrics

import (
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/x-xyz/metagen/base/log"
)

const (
	// DdPort is the dogstatsd port of the agent
	DdPort = 8125
	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
)

// NewClient connects to the datadog agent on host. Without a host the metrics are
// only written to the debug log.
func NewClient(host string) (StatsClient, error) {
	if len(host) == 0 {
		return &LogClient{}, nil
	}
	addr := fmt.Sprintf("%s:%d", host, DdPort)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")
	client, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Error("can't talk to datadog agent")
		return nil, err
	}
	return client, nil
}
