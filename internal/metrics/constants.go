package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Reward engine metric names
const (
	MetricNameSlotPlays         = "slot_plays_total"
	MetricNameSlotTurns         = "slot_turns_total"
	MetricNameSlotRollbacks     = "slot_rolled_back_turns_total"
	MetricNameJackpotDraws      = "jackpot_draws_total"
	MetricNameRewardsApplied    = "rewards_applied_total"
	MetricNameLedgerAppends     = "ledger_appends_total"
	MetricNameLedgerClaims      = "ledger_claims_total"
	MetricNamePoolSettlements   = "jackpot_pool_settlements_total"
	MetricNameJackpotPool       = "jackpot_pool"
	MetricNameConfigRefreshes   = "game_config_refreshes_total"
	MetricNameDailyCheckins     = "daily_checkins_total"
	MetricNameReferralOnboarded = "referrals_onboarded_total"
	MetricNameWorkerJobs        = "worker_jobs_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Reward engine metric help text
const (
	HelpTextSlotPlays         = "Total number of slot machine plays"
	HelpTextSlotTurns         = "Total number of recorded slot machine turns"
	HelpTextSlotRollbacks     = "Total number of bonus turns rolled back"
	HelpTextJackpotDraws      = "Total number of jackpot draws by reward kind"
	HelpTextRewardsApplied    = "Total number of rewards processed by kind and outcome"
	HelpTextLedgerAppends     = "Total number of ledger appends by reason and mode"
	HelpTextLedgerClaims      = "Total number of ledger claim attempts by outcome"
	HelpTextPoolSettlements   = "Total number of jackpot pool debits"
	HelpTextJackpotPool       = "Current jackpot pool size"
	HelpTextConfigRefreshes   = "Total number of game configuration refreshes by outcome"
	HelpTextDailyCheckins     = "Total number of daily check-ins by outcome"
	HelpTextReferralOnboarded = "Total number of onboarded referrals"
	HelpTextWorkerJobs        = "Total number of background jobs by outcome"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelKind    = "kind"
	LabelOutcome = "outcome"
	LabelReason  = "reason"
	LabelMode    = "mode"
)

// Common label values
const (
	OutcomeApplied  = "applied"
	OutcomeDeferred = "deferred"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
	OutcomeSuccess  = "success"
	OutcomeNoop     = "noop"
	OutcomeDropped  = "dropped"

	ModeMerged   = "merged"
	ModeInserted = "inserted"

	// PathUnmatched labels requests that matched no route
	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
