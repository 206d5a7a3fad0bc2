package rabbitmq

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	derr "github.com/next-trace/scg-dispatcher/contract/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Concrete AMQP connection-backed constructor and publisher wrapper with auto-reconnect.

const eventsExchangeType = "topic"

type Config struct {
	URL         string
	ConnTimeout time.Duration
}

// amqpPublisher maintains a live channel and redials on connection loss.
type amqpPublisher struct {
	cfg    Config
	mu     sync.RWMutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed chan struct{}
	ready  chan struct{} // closed once a channel is available
}

func newAMQPPublisher(cfg Config) (*amqpPublisher, func()) {
	p := &amqpPublisher{
		cfg:    cfg,
		closed: make(chan struct{}),
		ready:  make(chan struct{}),
	}
	go p.run()

	return p, p.close
}

func (p *amqpPublisher) Publish(ctx context.Context, m PubMsg) error {
	p.mu.RLock()
	ch := p.ch
	p.mu.RUnlock()

	if ch == nil {
		// not connected yet; wait for the dial loop or the caller's deadline
		select {
		case <-p.ready:
		case <-ctx.Done():
			return ctx.Err()
		}

		p.mu.RLock()
		ch = p.ch
		p.mu.RUnlock()

		if ch == nil {
			return fmt.Errorf("%w: rabbitmq not connected", derr.ErrNotConnected)
		}
	}

	var h amqp.Table
	if len(m.Headers) > 0 {
		h = amqp.Table{}
		for k, v := range m.Headers {
			h[k] = v
		}
	}

	return ch.PublishWithContext(
		ctx,
		m.Exchange,
		m.RoutingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Headers:      h,
			ContentType:  "application/json",
			Body:         m.Body,
		},
	)
}

func (p *amqpPublisher) dial() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(p.cfg.URL, amqp.Config{
		Locale:     "en_US",
		Properties: amqp.Table{"product": "scg-dispatcher"},
		Dial:       amqp.DefaultDial(p.cfg.ConnTimeout),
	})
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	err = ch.ExchangeDeclare(eventsExchange, eventsExchangeType, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, nil, err
	}

	return conn, ch, nil
}

func (p *amqpPublisher) run() {
	backoff := time.Second
	const maxBackoff = 30 * time.Second
	// #nosec G404 -- non-crypto RNG is acceptable for backoff jitter
	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // non-crypto RNG is acceptable for backoff jitter

	for {
		select {
		case <-p.closed:
			return
		default:
		}

		conn, ch, err := p.dial()
		if err != nil {
			sleep := backoff + time.Duration(rng.Int63n(int64(backoff/2)))/2
			if sleep > maxBackoff {
				sleep = maxBackoff
			}

			t := time.NewTimer(sleep)
			select {
			case <-p.closed:
				t.Stop()
				return
			case <-t.C:
			}

			if backoff < maxBackoff {
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
			}

			continue
		}

		backoff = time.Second

		p.mu.Lock()
		p.conn = conn
		p.ch = ch
		// a fresh ready channel per connection, immediately marked ready
		oldReady := p.ready
		p.ready = make(chan struct{})
		close(oldReady)
		close(p.ready)
		p.mu.Unlock()

		// block until the connection drops, then loop to redial
		notify := conn.NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-p.closed:
			_ = ch.Close()
			_ = conn.Close()

			return
		case <-notify:
			_ = ch.Close()
			_ = conn.Close()
		}
	}
}

func (p *amqpPublisher) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.closed:
		return
	default:
		close(p.closed)
	}

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}

	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// NewWithAMQPConn dials RabbitMQ with auto-reconnect, ensures the events exchange, and returns a Sink and cleanup.
func NewWithAMQPConn(cfg Config) (*Sink, func(), error) {
	if cfg.URL == "" {
		return nil, nil, fmt.Errorf("%w: rabbitmq url required", derr.ErrNotConnected)
	}

	pub, cleanup := newAMQPPublisher(cfg)

	return New(pub), cleanup, nil
}
