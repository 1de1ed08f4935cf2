package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Slot machine and jackpot metrics
var (
	SlotPlays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSlotPlays,
			Help: HelpTextSlotPlays,
		},
	)

	SlotTurns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSlotTurns,
			Help: HelpTextSlotTurns,
		},
	)

	SlotRollbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSlotRollbacks,
			Help: HelpTextSlotRollbacks,
		},
	)

	JackpotDraws = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJackpotDraws,
			Help: HelpTextJackpotDraws,
		},
		[]string{LabelKind},
	)

	PoolSettlements = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePoolSettlements,
			Help: HelpTextPoolSettlements,
		},
	)

	JackpotPool = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameJackpotPool,
			Help: HelpTextJackpotPool,
		},
	)

	ConfigRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConfigRefreshes,
			Help: HelpTextConfigRefreshes,
		},
		[]string{LabelOutcome},
	)
)

// Ledger metrics
var (
	RewardsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsApplied,
			Help: HelpTextRewardsApplied,
		},
		[]string{LabelKind, LabelOutcome},
	)

	LedgerAppends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerAppends,
			Help: HelpTextLedgerAppends,
		},
		[]string{LabelReason, LabelMode},
	)

	LedgerClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerClaims,
			Help: HelpTextLedgerClaims,
		},
		[]string{LabelOutcome},
	)

	DailyCheckins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDailyCheckins,
			Help: HelpTextDailyCheckins,
		},
		[]string{LabelOutcome},
	)

	ReferralsOnboarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReferralOnboarded,
			Help: HelpTextReferralOnboarded,
		},
	)
)

// Background job metrics
var (
	WorkerJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWorkerJobs,
			Help: HelpTextWorkerJobs,
		},
		[]string{LabelOutcome},
	)
)
