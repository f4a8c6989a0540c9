package learning

import (
	"log"
	"sync"
	"time"

	"github.com/khanglvm/quickfind/internal/catalog"
	"github.com/khanglvm/quickfind/internal/storage"
)

const (
	// eventQueueSize is the buffer size for the event queue.
	// If full, events are dropped (non-blocking).
	eventQueueSize = 1000

	// batchFlushSize is the number of events that triggers an immediate flush.
	batchFlushSize = 10

	// flushInterval is how often pending events are written.
	flushInterval = 50 * time.Millisecond
)

// Tracker persists interactions in the background with non-blocking writes.
type Tracker struct {
	storage    storage.Storage
	eventQueue chan Interaction
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	enabled    bool
	initErr    error // storage.Init failure; tracking stays off
	mu         sync.RWMutex
}

// NewTracker initialises s and starts the background writer.
func NewTracker(s storage.Storage) *Tracker {
	t := &Tracker{
		storage:    s,
		eventQueue: make(chan Interaction, eventQueueSize),
		stopChan:   make(chan struct{}),
		enabled:    s != nil,
	}

	if s != nil {
		if err := s.Init(); err != nil {
			log.Printf("Warning: history storage initialization failed: %v", err)
			t.enabled = false
			t.initErr = err
		}
	}

	t.wg.Add(1)
	go t.processEvents()

	return t
}

// Record updates session and queues the interaction for persistence.
func (t *Tracker) Record(session *Session, query string, selected *catalog.Item) {
	if session != nil {
		session.RecordInteraction(query, selected)
	}
	t.Track(NewInteraction(query, selected))
}

// Track queues an interaction (non-blocking).
// If the queue is full, the event is dropped and a warning is logged.
func (t *Tracker) Track(event Interaction) {
	if !t.IsEnabled() || event.Query == "" {
		return
	}

	select {
	case t.eventQueue <- event:
	default:
		log.Printf("Warning: history queue full, dropping interaction for query: %q", event.Query)
	}
}

// Stop shuts down the tracker after flushing queued events. It is safe to
// call more than once.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
		t.wg.Wait()
	})
}

// Disable disables tracking (events are ignored).
func (t *Tracker) Disable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = false
}

// Enable enables tracking when a storage is attached and initialised.
func (t *Tracker) Enable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = t.storage != nil && t.initErr == nil
}

// InitErr returns the storage initialisation error, if any.
func (t *Tracker) InitErr() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.initErr
}

// IsEnabled returns whether tracking is enabled.
func (t *Tracker) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// QueueSize returns the current number of events in the queue.
func (t *Tracker) QueueSize() int {
	return len(t.eventQueue)
}

// processEvents runs in the background, batching and flushing events.
func (t *Tracker) processEvents() {
	defer t.wg.Done()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]Interaction, 0, batchFlushSize)

	for {
		select {
		case event := <-t.eventQueue:
			batch = append(batch, event)
			if len(batch) >= batchFlushSize {
				t.flush(batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				t.flush(batch)
				batch = batch[:0]
			}

		case <-t.stopChan:
			for {
				select {
				case event := <-t.eventQueue:
					batch = append(batch, event)
				default:
					t.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes a batch of events to storage.
func (t *Tracker) flush(events []Interaction) {
	for _, event := range events {
		if err := t.storage.RecordInteraction(event.ToStorage()); err != nil {
			log.Printf("Warning: failed to record interaction: %v", err)
		}
	}
}
