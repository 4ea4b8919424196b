package internaldefs

import goSession "github.com/MrEthical07/goSession"

// CounterDef binds a MetricID to its exported name and help text. Both
// exporters render from this single table so the two surfaces never
// drift.
type CounterDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session engine.
var CounterDefs = []CounterDef{
	{goSession.MetricSessionCreated, "gosession_sessions_created_total", "Sessions created."},
	{goSession.MetricSessionCreatedBySignature, "gosession_sessions_created_by_signature_total", "Sessions created through a detached owner signature."},
	{goSession.MetricExpiredSessionReplaced, "gosession_expired_sessions_replaced_total", "Expired entries overwritten by a new session for the same owner."},
	{goSession.MetricCreateRejected, "gosession_create_rejected_total", "Session requests rejected by validation or the single-active-session invariant."},
	{goSession.MetricVerificationFailed, "gosession_verification_failed_total", "Signature verifications that failed."},
	{goSession.MetricCleanupScheduled, "gosession_cleanups_scheduled_total", "Cleanup callbacks scheduled."},
	{goSession.MetricSchedulingFailed, "gosession_scheduling_failed_total", "Cleanup scheduling failures (creation rolled back)."},
	{goSession.MetricSessionDeleted, "gosession_sessions_deleted_total", "Sessions removed by the scheduled cleanup."},
	{goSession.MetricSessionCancelled, "gosession_sessions_cancelled_total", "Sessions cancelled early by their owner."},
	{goSession.MetricCleanupStale, "gosession_cleanups_stale_total", "Stale cleanup callbacks that found a newer active session."},
	{goSession.MetricCleanupNoop, "gosession_cleanups_noop_total", "Cleanup callbacks that found no entry."},
	{goSession.MetricNotificationFailed, "gosession_notifications_failed_total", "Domain events that could not be published."},
}
