package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventType identifies the kind of event flowing through the bus
type EventType string

const (
	// ScenarioAnalyzed is emitted after a what-if scenario calculation completes
	ScenarioAnalyzed EventType = "scenario_analyzed"
	// VendorScoreUpdated is emitted after a vendor's composite score is recalculated
	VendorScoreUpdated EventType = "vendor_score_updated"
	// BriefGenerated is emitted after an executive brief is generated
	BriefGenerated EventType = "brief_generated"
	// BackupCompleted is emitted after a database backup finishes
	BackupCompleted EventType = "backup_completed"
)

// Event is a single published event with its payload
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// EventData is the interface that all event data types must implement.
// This allows for type-safe event data while maintaining flexibility.
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// ScenarioAnalyzedData contains data for ScenarioAnalyzed events
type ScenarioAnalyzedData struct {
	WorkPackageID string  `json:"work_package_id"`
	DelayWeeks    float64 `json:"delay_weeks"`
	BudgetImpact  float64 `json:"budget_impact"`
	RiskLevel     string  `json:"risk_level"`
}

// EventType returns the event type for ScenarioAnalyzedData
func (d *ScenarioAnalyzedData) EventType() EventType {
	return ScenarioAnalyzed
}

// VendorScoreUpdatedData contains data for VendorScoreUpdated events
type VendorScoreUpdatedData struct {
	VendorID string `json:"vendor_id"`
	NewScore int    `json:"new_score"`
}

// EventType returns the event type for VendorScoreUpdatedData
func (d *VendorScoreUpdatedData) EventType() EventType {
	return VendorScoreUpdated
}

// BriefGeneratedData contains data for BriefGenerated events
type BriefGeneratedData struct {
	ProjectID     string `json:"project_id"`
	ProjectHealth string `json:"project_health"`
}

// EventType returns the event type for BriefGeneratedData
func (d *BriefGeneratedData) EventType() EventType {
	return BriefGenerated
}

// BackupCompletedData contains data for BackupCompleted events
type BackupCompletedData struct {
	Archive   string `json:"archive"`
	SizeBytes int64  `json:"size_bytes"`
	Uploaded  bool   `json:"uploaded"`
}

// EventType returns the event type for BackupCompletedData
func (d *BackupCompletedData) EventType() EventType {
	return BackupCompleted
}

// Bus is an in-process publish/subscribe event bus. Publishing never blocks:
// slow subscribers drop events rather than stalling the publisher.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]chan Event
	nextID      int
	log         zerolog.Logger
}

// NewBus creates a new event bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[int]chan Event),
		log:         log.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers a new subscriber and returns its channel along with an
// unsubscribe function. The unsubscribe function closes the channel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan Event, 16)
	b.subscribers[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// Publish sends an event to all subscribers
func (b *Bus) Publish(data EventData) {
	event := Event{
		Type:      data.EventType(),
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.log.Warn().
				Int("subscriber", id).
				Str("type", string(event.Type)).
				Msg("Subscriber channel full, dropping event")
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
