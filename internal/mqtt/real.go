package mqtt

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/sweeney/arm-controller/internal/logic"
)

// bufferCapacity bounds the messages held while the broker is unreachable.
const bufferCapacity = 100

// RealPublisher publishes to an actual MQTT broker.
type RealPublisher struct {
	client paho.Client
	topic  string
	logger *zap.SugaredLogger

	mu     sync.Mutex
	buffer *ringBuffer
	// connectedOnce distinguishes the first connect from a reconnect.
	connectedOnce bool
}

// NewRealPublisher creates a publisher connected to the given broker.
// The broker publishes a retained OFFLINE message on our behalf if the
// connection drops without a clean disconnect.
func NewRealPublisher(broker, clientID string, logger *zap.SugaredLogger) (*RealPublisher, error) {
	p := &RealPublisher{
		topic:  Topic,
		logger: logger,
		buffer: newRingBuffer(bufferCapacity, logger),
	}

	will, err := FormatSystemPayload(WillEvent)
	if err != nil {
		return nil, fmt.Errorf("format will payload: %w", err)
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetBinaryWill(TopicSystem, will, 1, true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			logger.Warnw("mqtt connection lost", "error", err)
		})

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return p, nil
}

// onConnect runs on every successful (re)connect. Reconnects announce
// themselves and flush whatever was buffered while offline.
func (p *RealPublisher) onConnect(client paho.Client) {
	p.mu.Lock()
	first := !p.connectedOnce
	p.connectedOnce = true
	pending := p.buffer.drainAll()
	p.mu.Unlock()

	if first && len(pending) == 0 {
		return
	}

	// paho calls handlers on its own goroutine; publishing and waiting here
	// would block its router.
	go func() {
		if !first {
			payload, err := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "RECONNECTED"})
			if err == nil {
				client.Publish(TopicSystem, 1, false, payload)
			}
			p.logger.Infow("mqtt reconnected", "buffered", len(pending))
		}
		for _, msg := range pending {
			token := client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
			if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
				p.logger.Warnw("mqtt replay failed", "topic", msg.topic, "error", token.Error())
			}
		}
	}()
}

// send publishes or buffers a message depending on connection state.
func (p *RealPublisher) send(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnectionOpen() {
		p.mu.Lock()
		p.buffer.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		p.mu.Unlock()
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish to %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Publish sends a pose event to the MQTT broker.
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	// QoS 0 (at-most-once), not retained
	return p.send(p.topic, 0, false, payload)
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	// QoS 1 for lifecycle events - we want to ensure delivery
	return p.send(TopicSystem, 1, event.Retained, payload)
}

// IsConnected reports whether the broker connection is currently open.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
