package timelock

import (
	"crypto/rand"
	"fmt"
	"time"
)

// AuditEventType represents the type of audit event
type AuditEventType string

const (
	// Session lifecycle events
	AuditEventSessionDealt   AuditEventType = "session_dealt"
	AuditEventEnvelopeSealed AuditEventType = "envelope_sealed"
	AuditEventEnvelopeOpened AuditEventType = "envelope_opened"

	// Share lifecycle events
	AuditEventShareSubmission AuditEventType = "share_submission"
	AuditEventAlphaRelease    AuditEventType = "alpha_release"
	AuditEventKeyRecovery     AuditEventType = "key_recovery"

	// Error events
	AuditEventValidationFailure AuditEventType = "validation_failure"
)

// AuditEventReason represents why an event occurred
type AuditEventReason string

const (
	ReasonSessionCreation    AuditEventReason = "session_creation"
	ReasonHolderSubmission   AuditEventReason = "holder_submission"
	ReasonDecryptionTime     AuditEventReason = "decryption_time_reached"
	ReasonManualTrigger      AuditEventReason = "manual_trigger"
	ReasonValidationError    AuditEventReason = "validation_error"
	ReasonVerificationFailed AuditEventReason = "verification_failed"
)

// AuditEvent records one observable action of the crypto core. The core
// itself stays pure; callers build events around the operations they
// invoke and hand them to their own pipeline.
type AuditEvent struct {
	EventID   string           `json:"event_id"`
	Timestamp time.Time        `json:"timestamp"`
	EventType AuditEventType   `json:"event_type"`
	Reason    AuditEventReason `json:"reason"`

	// Context information
	SessionID   string `json:"session_id,omitempty"`
	HolderIndex int    `json:"holder_index,omitempty"`
	Threshold   int    `json:"threshold,omitempty"`
	HolderCount int    `json:"holder_count,omitempty"`

	// Success/failure information
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Additional context
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// KeyRecoveryEvent contains details about a hybrid key recovery
type KeyRecoveryEvent struct {
	AuditEvent

	SharesUsed  int           `json:"shares_used"`
	AlphasUsed  int           `json:"alphas_used"`
	Duration    time.Duration `json:"duration"`
	StrictCheck bool          `json:"strict_check"`
}

// ShareSubmissionEvent contains details about one holder's submission
type ShareSubmissionEvent struct {
	AuditEvent

	Verified bool `json:"verified"`
}

// AuditEventHandler defines the interface for handling audit events.
// Applications implement this to record events according to their needs.
type AuditEventHandler interface {
	// OnSessionDealt is called when a time-locked session is set up
	OnSessionDealt(event *AuditEvent)

	// OnShareSubmission is called when a holder submits a share
	OnShareSubmission(event *ShareSubmissionEvent)

	// OnAlphaRelease is called when alpha masks are published
	OnAlphaRelease(event *AuditEvent)

	// OnKeyRecovery is called when a ballot key is reconstructed
	OnKeyRecovery(event *KeyRecoveryEvent)

	// OnEnvelope is called when a ballot is sealed or opened
	OnEnvelope(event *AuditEvent)

	// OnValidationFailure is called when validation fails
	OnValidationFailure(event *AuditEvent)
}

// NullAuditHandler is a no-op implementation of AuditEventHandler
type NullAuditHandler struct{}

func (n *NullAuditHandler) OnSessionDealt(event *AuditEvent)               {}
func (n *NullAuditHandler) OnShareSubmission(event *ShareSubmissionEvent)  {}
func (n *NullAuditHandler) OnAlphaRelease(event *AuditEvent)               {}
func (n *NullAuditHandler) OnKeyRecovery(event *KeyRecoveryEvent)          {}
func (n *NullAuditHandler) OnEnvelope(event *AuditEvent)                   {}
func (n *NullAuditHandler) OnValidationFailure(event *AuditEvent)          {}

// AuditEventBuilder helps construct audit events with proper defaults
type AuditEventBuilder struct {
	event *AuditEvent
}

// NewAuditEventBuilder creates a new audit event builder
func NewAuditEventBuilder(eventType AuditEventType, reason AuditEventReason) *AuditEventBuilder {
	return &AuditEventBuilder{
		event: &AuditEvent{
			EventID:   generateEventID(),
			Timestamp: time.Now(),
			EventType: eventType,
			Reason:    reason,
			Success:   true, // Default to success, can be overridden
			Metadata:  make(map[string]interface{}),
		},
	}
}

// WithSession attaches the session identifier
func (b *AuditEventBuilder) WithSession(sessionID string) *AuditEventBuilder {
	b.event.SessionID = sessionID
	return b
}

// WithHolder attaches the submitting holder's index
func (b *AuditEventBuilder) WithHolder(index int) *AuditEventBuilder {
	b.event.HolderIndex = index
	return b
}

// WithParameters attaches the session's threshold parameters
func (b *AuditEventBuilder) WithParameters(threshold, holderCount int) *AuditEventBuilder {
	b.event.Threshold = threshold
	b.event.HolderCount = holderCount
	return b
}

// WithError marks the event failed and records the error
func (b *AuditEventBuilder) WithError(err error) *AuditEventBuilder {
	b.event.Success = false
	if err != nil {
		b.event.Error = err.Error()
	}
	return b
}

// WithMetadata adds arbitrary context
func (b *AuditEventBuilder) WithMetadata(key string, value interface{}) *AuditEventBuilder {
	b.event.Metadata[key] = value
	return b
}

// Build returns the constructed event
func (b *AuditEventBuilder) Build() *AuditEvent {
	return b.event
}

// BuildKeyRecovery returns a key recovery event with recovery details
func (b *AuditEventBuilder) BuildKeyRecovery(sharesUsed, alphasUsed int, duration time.Duration, strict bool) *KeyRecoveryEvent {
	return &KeyRecoveryEvent{
		AuditEvent:  *b.event,
		SharesUsed:  sharesUsed,
		AlphasUsed:  alphasUsed,
		Duration:    duration,
		StrictCheck: strict,
	}
}

// BuildShareSubmission returns a share submission event with its
// verification outcome
func (b *AuditEventBuilder) BuildShareSubmission(verified bool) *ShareSubmissionEvent {
	return &ShareSubmissionEvent{
		AuditEvent: *b.event,
		Verified:   verified,
	}
}

// generateEventID generates a unique event ID
// Uses a combination of timestamp and random bytes to ensure uniqueness
func generateEventID() string {
	timestamp := time.Now().Format("20060102150405.000000")

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("%s.%d", timestamp, time.Now().UnixNano()%10000)
	}

	return fmt.Sprintf("%s.%x", timestamp, randomBytes)
}
