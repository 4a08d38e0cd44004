package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CampaignCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "launchpad_calls_total", Help: "State-changing calls count"},
		[]string{"op"},
	)
	CampaignCallErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "launchpad_call_errors_total", Help: "Rejected calls count"},
		[]string{"op"},
	)
	CampaignsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "launchpad_campaigns_created_total", Help: "Campaigns created"},
	)
	SettleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "launchpad_settle_duration_seconds", Help: "finishUp duration", Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}},
	)
	CampaignsFinalized = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "launchpad_campaigns_finalized", Help: "Finalized campaigns by outcome"},
		[]string{"outcome"},
	)
)

func MustRegister() {
	prometheus.MustRegister(
		CampaignCallsTotal,
		CampaignCallErrorsTotal,
		CampaignsCreatedTotal,
		SettleDuration,
		CampaignsFinalized,
	)
}

func IncCall(op string)      { CampaignCallsTotal.WithLabelValues(op).Inc() }
func IncCallError(op string) { CampaignCallErrorsTotal.WithLabelValues(op).Inc() }
func IncCampaignCreated()    { CampaignsCreatedTotal.Inc() }

func ObserveSettle(seconds float64) { SettleDuration.Observe(seconds) }

func IncFinalized(outcome string) { CampaignsFinalized.WithLabelValues(outcome).Inc() }
