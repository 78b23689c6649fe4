package shape

import (
	"fmt"
	"sync"
	"time"

	"github.com/sgostarter/i/l"
)

func NewEventChannel(logger l.Wrapper) EventChannel {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	return &eventChannelImpl{
		logger:    logger.WithFields(l.StringField(l.ClsKey, "eventChannelImpl")),
		listeners: make(map[EventType][]listenerEntry),
	}
}

type listenerEntry struct {
	id       SubscriptionID
	listener Listener
}

type eventChannelImpl struct {
	logger l.Wrapper

	lock      sync.RWMutex
	nextID    SubscriptionID
	listeners map[EventType][]listenerEntry
}

func (impl *eventChannelImpl) Subscribe(eventType EventType, listener Listener) SubscriptionID {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	impl.nextID++

	impl.listeners[eventType] = append(impl.listeners[eventType], listenerEntry{
		id:       impl.nextID,
		listener: listener,
	})

	return impl.nextID
}

func (impl *eventChannelImpl) Unsubscribe(eventType EventType, id SubscriptionID) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	entries := impl.listeners[eventType]

	for idx, entry := range entries {
		if entry.id != id {
			continue
		}

		newEntries := make([]listenerEntry, 0, len(entries)-1)
		newEntries = append(newEntries, entries[:idx]...)
		newEntries = append(newEntries, entries[idx+1:]...)

		if len(newEntries) == 0 {
			delete(impl.listeners, eventType)
		} else {
			impl.listeners[eventType] = newEntries
		}

		return
	}
}

func (impl *eventChannelImpl) Publish(eventType EventType, shapeID string, data interface{}) {
	impl.lock.RLock()
	entries := impl.listeners[eventType]
	impl.lock.RUnlock()

	if len(entries) == 0 {
		return
	}

	e := Event{
		Type:      eventType,
		ShapeID:   shapeID,
		Timestamp: time.Now(),
		Data:      data,
	}

	for _, entry := range entries {
		impl.dispatch(entry, e)
	}
}

func (impl *eventChannelImpl) ListenerCount(eventType EventType) int {
	impl.lock.RLock()
	defer impl.lock.RUnlock()

	return len(impl.listeners[eventType])
}

func (impl *eventChannelImpl) dispatch(entry listenerEntry, e Event) {
	defer func() {
		if r := recover(); r != nil {
			impl.logger.WithFields(l.ErrorField(fmt.Errorf("%v", r)), l.StringField("event", string(e.Type)),
				l.StringField("shapeID", e.ShapeID), l.UInt64Field("subscription", uint64(entry.id))).Error("listener panic")
		}
	}()

	entry.listener(e)
}
