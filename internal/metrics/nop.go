// Package metrics holds the registry's default metrics collector.
package metrics

import "github.com/arloliu/keyspace/types"

// NopMetrics ignores every registry metric. It is installed by DefaultConfig
// so the registry can record unconditionally.
type NopMetrics struct{}

var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics returns a collector that ignores every metric.
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

func (*NopMetrics) IncSessionCreated(string)               {}
func (*NopMetrics) IncSessionReused(string)                {}
func (*NopMetrics) IncConnectError(string)                 {}
func (*NopMetrics) ObserveConnectDuration(string, float64) {}
func (*NopMetrics) SetOpenSessions(int)                    {}
func (*NopMetrics) IncRepositoryCreated(string, string)    {}
func (*NopMetrics) IncRepositoryError(string, string)      {}
