package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()
	assert.Equal(t, 1, bus.SubscriberCount())

	bus.Publish(&ScenarioAnalyzedData{
		WorkPackageID: "wp-electrical",
		DelayWeeks:    4,
		BudgetImpact:  4600000,
		RiskLevel:     "CRITICAL",
	})

	select {
	case event := <-ch:
		assert.Equal(t, ScenarioAnalyzed, event.Type)
		assert.False(t, event.Timestamp.IsZero())
		data, ok := event.Data.(*ScenarioAnalyzedData)
		require.True(t, ok)
		assert.Equal(t, "wp-electrical", data.WorkPackageID)
		assert.Equal(t, 4600000.0, data.BudgetImpact)
	default:
		t.Fatal("expected event on subscriber channel")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	ch, unsubscribe := bus.Subscribe()
	unsubscribe()
	assert.Equal(t, 0, bus.SubscriberCount())

	// Channel is closed after unsubscribe
	_, open := <-ch
	assert.False(t, open)

	// Unsubscribing twice is safe
	unsubscribe()

	// Publishing with no subscribers is a no-op
	bus.Publish(&BackupCompletedData{Archive: "latso_2025-01-06.tar.gz"})
}

func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	// Overfill the subscriber buffer; Publish must not block
	for i := 0; i < 40; i++ {
		bus.Publish(&VendorScoreUpdatedData{VendorID: "v-abc", NewScore: 78})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			assert.Equal(t, cap(ch), received)
			return
		}
	}
}
