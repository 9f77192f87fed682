package bridge

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/opsdeck/taskdeck/internal/core/logging"
)

// retryDelays is the fixed escalating reconnect schedule. Attempts beyond
// the last entry reuse the ceiling.
var retryDelays = []time.Duration{
	0,
	1 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
}

// dialTimeout bounds each reconnect dial.
const dialTimeout = 10 * time.Second

// retryDelay returns the wait before the given zero-based attempt.
func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		return retryDelays[0]
	}
	if attempt >= len(retryDelays) {
		return retryDelays[len(retryDelays)-1]
	}
	return retryDelays[attempt]
}

type subscriberID = int64

type subscriber[T any] struct {
	id subscriberID
	fn func(T)
}

// subscriberList keeps registration order and supports removal by ID.
type subscriberList[T any] struct {
	subs []subscriber[T]
}

func (l *subscriberList[T]) add(id subscriberID, fn func(T)) {
	l.subs = append(l.subs, subscriber[T]{id: id, fn: fn})
}

func (l *subscriberList[T]) remove(id subscriberID) bool {
	for i, s := range l.subs {
		if s.id == id {
			l.subs = append(l.subs[:i], l.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Bridge is the hub client. Connect once per session; a dead connection is
// retried on the fixed schedule up to maxRetries, after which the bridge
// goes silent and Connected() is the only signal — callers detect and
// re-trigger Connect from a periodic liveness check.
type Bridge struct {
	url        string
	maxRetries int
	dialer     *websocket.Dialer
	log        zerolog.Logger

	// sessionCtx spans the bridge's whole life and ends at Close. The
	// reconnect schedule runs against it, never against a dial context,
	// so backoff survives the caller's context going away.
	sessionCtx context.Context
	stop       context.CancelFunc

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	retries   int
	nextSubID subscriberID

	onCreated       subscriberList[NewTaskCreatedPayload]
	onAccepted      subscriberList[TaskAcceptedPayload]
	onStatusChanged subscriberList[TaskStatusChangedPayload]
}

// New creates a bridge for the given hub URL.
func New(url string, maxRetries int) *Bridge {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bridge{
		url:        url,
		maxRetries: maxRetries,
		dialer:     websocket.DefaultDialer,
		log:        logging.Component("bridge"),
		sessionCtx: ctx,
		stop:       cancel,
	}
}

// Connect establishes the hub connection and starts the receive loop. ctx
// bounds only the dial; the receive loop and the reconnect schedule run on
// the bridge's own lifetime. Calling Connect while already connected is a
// no-op. A successful connection resets the retry budget.
func (b *Bridge) Connect(ctx context.Context) error {
	b.mu.Lock()
	if b.connected {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	conn, _, err := b.dialer.DialContext(ctx, b.url, nil)
	if err != nil {
		b.log.Warn().Err(err).Str("url", b.url).Msg("hub dial failed")
		b.scheduleReconnect()
		return err
	}

	b.mu.Lock()
	b.conn = conn
	b.connected = true
	b.retries = 0
	b.mu.Unlock()

	b.log.Info().Str("url", b.url).Msg("hub connected")
	go b.readLoop(conn)
	return nil
}

// Connected reports whether the transport-level connection is up.
func (b *Bridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

// Close tears down the connection and ends the bridge's session, stopping
// any pending reconnect attempts.
func (b *Bridge) Close() error {
	b.stop()

	b.mu.Lock()
	conn := b.conn
	b.conn = nil
	b.connected = false
	b.retries = b.maxRetries // suppress the read loop's reconnect
	b.mu.Unlock()

	if conn != nil {
		return conn.Close()
	}
	return nil
}

// SubscribeNewTaskCreated registers a listener. Listeners run on the
// bridge's dispatch goroutine in registration order and must not block.
func (b *Bridge) SubscribeNewTaskCreated(fn func(NewTaskCreatedPayload)) subscriberID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSubID++
	b.onCreated.add(b.nextSubID, fn)
	return b.nextSubID
}

// SubscribeTaskAccepted registers a listener for acceptance events.
func (b *Bridge) SubscribeTaskAccepted(fn func(TaskAcceptedPayload)) subscriberID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSubID++
	b.onAccepted.add(b.nextSubID, fn)
	return b.nextSubID
}

// SubscribeTaskStatusChanged registers a listener for status moves.
func (b *Bridge) SubscribeTaskStatusChanged(fn func(TaskStatusChangedPayload)) subscriberID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSubID++
	b.onStatusChanged.add(b.nextSubID, fn)
	return b.nextSubID
}

// Unsubscribe removes a listener by the ID Subscribe returned.
func (b *Bridge) Unsubscribe(id subscriberID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.onCreated.remove(id) || b.onAccepted.remove(id) || b.onStatusChanged.remove(id)
}

func (b *Bridge) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			b.mu.Lock()
			// A superseded connection's death says nothing about the
			// current one; only the live connection flips liveness.
			stale := b.conn != conn
			if !stale {
				b.connected = false
			}
			b.mu.Unlock()

			if stale || b.sessionCtx.Err() != nil {
				return
			}

			b.log.Warn().Err(err).Msg("hub connection lost")
			b.scheduleReconnect()
			return
		}

		b.handleMessage(raw)
	}
}

func (b *Bridge) handleMessage(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		b.log.Debug().Err(err).Msg("undecodable hub frame")
		return
	}

	switch env.Event {
	case EventNewTaskCreated:
		var p NewTaskCreatedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			b.log.Debug().Err(err).Str("event", string(env.Event)).Msg("bad payload")
			return
		}
		dispatch(b, &b.onCreated, p)
	case EventTaskAccepted:
		var p TaskAcceptedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			b.log.Debug().Err(err).Str("event", string(env.Event)).Msg("bad payload")
			return
		}
		dispatch(b, &b.onAccepted, p)
	case EventTaskStatusChanged:
		var p TaskStatusChangedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			b.log.Debug().Err(err).Str("event", string(env.Event)).Msg("bad payload")
			return
		}
		dispatch(b, &b.onStatusChanged, p)
	default:
		b.log.Debug().Str("event", string(env.Event)).Msg("unknown hub event")
	}
}

// dispatch snapshots the subscriber list under the lock and invokes the
// callbacks outside it, so listeners may subscribe or unsubscribe freely.
func dispatch[T any](b *Bridge, list *subscriberList[T], payload T) {
	b.mu.Lock()
	subs := make([]subscriber[T], len(list.subs))
	copy(subs, list.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(payload)
	}
}

// scheduleReconnect queues another Connect on the retry schedule. Once the
// budget is exhausted no further attempts happen; the failure is silent by
// design and surfaced only through Connected().
func (b *Bridge) scheduleReconnect() {
	b.mu.Lock()
	if b.retries >= b.maxRetries {
		b.mu.Unlock()
		b.log.Error().Int("retries", b.maxRetries).Msg("hub reconnect budget exhausted")
		return
	}
	attempt := b.retries
	b.retries++
	b.mu.Unlock()

	delay := retryDelay(attempt)
	b.log.Info().Dur("delay", delay).Int("attempt", attempt+1).Msg("scheduling hub reconnect")

	go func() {
		select {
		case <-b.sessionCtx.Done():
		case <-time.After(delay):
			dialCtx, cancel := context.WithTimeout(b.sessionCtx, dialTimeout)
			_ = b.Connect(dialCtx)
			cancel()
		}
	}()
}
