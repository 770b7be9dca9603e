// Package metrics provides Prometheus instrumentation for the logging
// pipeline. All metrics are prefixed with "flash_" and register with the
// default registry via promauto.
//
// Three counters cover the dispatch path:
//   - RecordsDispatched: records accepted by the dispatcher, by level
//   - RecordsFiltered: records rejected by a channel filter, by channel
//   - ChannelEmitFailures: emit failures swallowed by the dispatcher, by channel
//
// To expose them, mount promhttp.Handler() on a metrics endpoint:
//
//	import "github.com/prometheus/client_golang/prometheus/promhttp"
//
//	mux.Handle("/metrics", promhttp.Handler())
package metrics
