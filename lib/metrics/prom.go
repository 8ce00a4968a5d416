package metrics

// InitPrometheusMetrics registers every metric with the default prometheus
// registry; call it once, before the node starts.
func InitPrometheusMetrics() {
	Version = PromVersion()
	Ledger = PromLedgerMetrics()
	API = PromAPIMetrics()
}
