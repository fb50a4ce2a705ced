// Package metrics registers the site's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	configFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_config_fallbacks_total",
		Help: "Configuration loads that fell back to defaults, by document",
	}, []string{"document"})

	postsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folio_posts_skipped_total",
		Help: "Blog post files skipped because they could not be extracted",
	})

	pagesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_pages_rendered_total",
		Help: "Rendered pages by route and status",
	}, []string{"route", "status"}) // status=ok|not_found|error

	liveReloadClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "folio_live_reload_clients",
		Help: "Connected live-reload websocket clients",
	})
)

func RecordConfigFallback(document string) {
	configFallbacks.WithLabelValues(document).Inc()
}

func RecordPostSkipped() {
	postsSkipped.Inc()
}

func RecordPageRendered(route, status string) {
	pagesRendered.WithLabelValues(route, status).Inc()
}

func SetLiveReloadClients(n int) {
	liveReloadClients.Set(float64(n))
}
