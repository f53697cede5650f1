package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/helios-hq/helios/modules/directory/domain/catalog"
)

var (
	dqReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dataquality",
		Subsystem: "report",
		Name:      "generated_total",
		Help:      "Total number of data quality reports generated.",
	})

	dqResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dataquality",
		Subsystem: "reconcile",
		Name:      "resolutions_total",
		Help:      "Total number of orphan resolutions broken down by domain and resolution.",
	}, []string{"domain", "resolution"})

	dqAutoImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dataquality",
		Subsystem: "reconcile",
		Name:      "auto_imported_total",
		Help:      "Total number of catalog entries created by auto-import broken down by domain.",
	}, []string{"domain"})
)

func recordReportGenerated() {
	dqReportsGenerated.Inc()
}

func recordResolution(domain catalog.Domain, resolution Resolution) {
	dqResolutions.WithLabelValues(string(domain), string(resolution)).Inc()
}

func recordAutoImport(domain catalog.Domain, imported int64) {
	dqAutoImported.WithLabelValues(string(domain)).Add(float64(imported))
}
