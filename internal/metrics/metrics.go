// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records the outcomes of the outbound calls (AI generation,
// AI chat, email relay) that are the only suspension points in the app.
type Collector struct {
	generations *prometheus.CounterVec
	chats       *prometheus.CounterVec
	emails      *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialtrackr_generations_total",
			Help: "Calendar generation attempts by outcome.",
		}, []string{"outcome"}),
		chats: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialtrackr_chats_total",
			Help: "AI chat requests by outcome.",
		}, []string{"outcome"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialtrackr_milestone_emails_total",
			Help: "Milestone email relays by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(c.generations, c.chats, c.emails)
	return c
}

func (c *Collector) RecordGeneration(outcome string) {
	c.generations.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordChat(outcome string) {
	c.chats.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordEmail(outcome string) {
	c.emails.WithLabelValues(outcome).Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
