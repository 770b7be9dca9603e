package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch metrics
var (
	RecordsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flash_records_dispatched_total",
			Help: "Total number of log records accepted for dispatch",
		},
		[]string{"level"},
	)

	RecordsFiltered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flash_records_filtered_total",
			Help: "Total number of log records rejected by a channel filter",
		},
		[]string{"channel"},
	)

	ChannelEmitFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flash_channel_emit_failures_total",
			Help: "Total number of channel emit failures swallowed by the dispatcher",
		},
		[]string{"channel"},
	)
)
