package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremon "github.com/kilianp07/evfleet/core/monitoring"
	"github.com/kilianp07/evfleet/core/model"
)

func withMockClient(t *testing.T, mc *mockClient) {
	t.Helper()
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() { newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) } })
}

func order() model.DispatchOrder {
	return model.DispatchOrder{
		OrderID:  "o-1",
		TruckID:  "T-01",
		RouteID:  "R-01",
		IssuedAt: time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishOrderTopicAndPayload(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", ClientID: "id", QoS: map[string]byte{"order": 1}})
	require.NoError(t, err)

	require.NoError(t, pub.PublishOrder(context.Background(), order()))
	require.Len(t, mc.published, 1)
	assert.Equal(t, "evfleet/dispatch/T-01", mc.published[0].topic)
	assert.Equal(t, byte(1), mc.published[0].qos)

	var got model.DispatchOrder
	require.NoError(t, json.Unmarshal(mc.published[0].payload, &got))
	assert.Equal(t, order(), got)
	assert.Empty(t, mc.subscribed, "no ack topic configured")
}

func TestPublisherAckRoundTrip(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	cfg := Config{Broker: "tcp://localhost:1883", ClientID: "id", TopicPrefix: "fleet/orders/", AckTopic: "fleet/orders/+/ack", QoS: map[string]byte{"ack": 1}}
	pub, err := NewPublisher(cfg)
	require.NoError(t, err)
	require.Len(t, mc.subscribed, 1)
	assert.Equal(t, byte(1), mc.subscribed[0].qos)

	require.NoError(t, pub.PublishOrder(context.Background(), order()))
	assert.Equal(t, "fleet/orders/T-01", mc.published[0].topic)

	pub.onAck(nil, mockMessage{[]byte(`{"order_id":"o-1"}`)})
	ok, err := pub.WaitForAck("o-1", time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = pub.WaitForAck("o-1", time.Millisecond)
	assert.Error(t, err, "ack channel released after use")
}

func TestWaitForAckTimeout(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", ClientID: "id"})
	require.NoError(t, err)
	require.NoError(t, pub.PublishOrder(context.Background(), order()))
	ok, err := pub.WaitForAck("o-1", time.Millisecond)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrAckTimeout)
}

func TestRetryLogic(t *testing.T) {
	mc := &mockClient{publishErrs: []error{fmt.Errorf("net fail"), nil}}
	withMockClient(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", ClientID: "id", MaxRetries: 1, BackoffMS: 1})
	require.NoError(t, err)
	require.NoError(t, pub.PublishOrder(context.Background(), order()))
	assert.Len(t, mc.published, 2)
}

type recordMonitor struct {
	err  error
	tags map[string]string
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.err = err
	r.tags = tags
}
func (r *recordMonitor) ReportPanic(any)     {}
func (r *recordMonitor) Flush(time.Duration) {}

func TestPublishErrorCaptured(t *testing.T) {
	fail := errors.New("net fail")
	mc := &mockClient{publishErrs: []error{fail, fail}}
	withMockClient(t, mc)
	mon := &recordMonitor{}
	coremon.Init(mon)
	defer coremon.Init(coremon.NopMonitor{})

	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", ClientID: "id", MaxRetries: 1, BackoffMS: 1})
	require.NoError(t, err)
	err = pub.PublishOrder(context.Background(), order())
	require.ErrorIs(t, err, fail)
	assert.Len(t, mc.published, 2)
	require.Error(t, mon.err)
	assert.Equal(t, "T-01", mon.tags["truck_id"])
	assert.Equal(t, "mqtt", mon.tags["module"])

	_, err = pub.WaitForAck("o-1", time.Millisecond)
	assert.Error(t, err, "failed orders are not tracked")
}

func TestPublishStopsOnContextCancel(t *testing.T) {
	fail := errors.New("net fail")
	mc := &mockClient{publishErrs: []error{fail, fail, fail}}
	withMockClient(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", ClientID: "id", MaxRetries: 2, BackoffMS: 10000})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = pub.PublishOrder(ctx, order())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, mc.published, 1)
}

func TestLWTConfigured(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	cfg := Config{Broker: "tcp://localhost:1883", ClientID: "id", LWTTopic: "lwt", LWTPayload: "bye", LWTQoS: 1}
	pub, err := NewPublisher(cfg)
	require.NoError(t, err)
	assert.True(t, mc.opts.WillEnabled)
	assert.Equal(t, "lwt", mc.opts.WillTopic)
	assert.Equal(t, "bye", string(mc.opts.WillPayload))
	pub.Disconnect()
	assert.Empty(t, mc.published)
}

func TestGeneratedClientID(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)
	_, err := NewPublisher(Config{Broker: "tcp://localhost:1883"})
	require.NoError(t, err)
	assert.Contains(t, mc.opts.ClientID, "evfleet-")
}
