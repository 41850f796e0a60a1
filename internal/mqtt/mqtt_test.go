package mqtt

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daemonp/crc8calc/internal/config"
	"github.com/daemonp/crc8calc/internal/crc8"
	"github.com/daemonp/crc8calc/internal/history"
	"github.com/daemonp/crc8calc/internal/log"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

type published struct {
	topic   string
	qos     byte
	retain  bool
	payload []byte
}

type fakeClient struct {
	mqtt.Client

	mu           sync.Mutex
	connectErr   error
	connected    bool
	published    []published
	subscribed   []string
	disconnected bool
}

func (c *fakeClient) Connect() mqtt.Token {
	c.connected = c.connectErr == nil
	return &fakeToken{err: c.connectErr}
}

func (c *fakeClient) IsConnected() bool {
	return c.connected
}

func (c *fakeClient) Disconnect(uint) {
	c.disconnected = true
	c.connected = false
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, published{topic, qos, retained, payload.([]byte)})
	return &fakeToken{}
}

func (c *fakeClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	c.subscribed = append(c.subscribed, topic)
	return &fakeToken{}
}

func (c *fakeClient) last(topic string) (published, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.published) - 1; i >= 0; i-- {
		if c.published[i].topic == topic {
			return c.published[i], true
		}
	}
	return published{}, false
}

type fakeMessage struct {
	mqtt.Message
	topic   string
	payload []byte
}

func (m *fakeMessage) Topic() string   { return m.topic }
func (m *fakeMessage) Payload() []byte { return m.payload }

func newTestMQTT(t *testing.T, withHistory bool) (*MQTT, *fakeClient, *history.History) {
	t.Helper()

	cfg := config.Default().MQTT
	var h *history.History
	if withHistory {
		var err error
		h, err = history.New(history.NewMemoryStore(), 0)
		require.NoError(t, err)
	}

	client := &fakeClient{}
	m := NewMQTT(&cfg, h, log.Nop())
	m.newClient = func(*mqtt.ClientOptions) mqtt.Client { return client }
	require.NoError(t, m.Connect())
	return m, client, h
}

func TestConnect(t *testing.T) {
	cfg := config.Default().MQTT
	m := NewMQTT(&cfg, nil, log.Nop())

	var opts *mqtt.ClientOptions
	client := &fakeClient{}
	m.newClient = func(o *mqtt.ClientOptions) mqtt.Client {
		opts = o
		return client
	}

	require.NoError(t, m.Connect())
	require.NotNil(t, opts)
	assert.Equal(t, "crc8calc", opts.ClientID)
	assert.True(t, opts.WillEnabled)
	assert.Equal(t, "crc8calc/status", opts.WillTopic)
	assert.Equal(t, []byte("offline"), opts.WillPayload)
	assert.True(t, opts.WillRetained)
	require.Len(t, opts.Servers, 1)
	assert.Equal(t, "localhost:1883", opts.Servers[0].Host)
}

func TestConnectError(t *testing.T) {
	cfg := config.Default().MQTT
	m := NewMQTT(&cfg, nil, log.Nop())
	boom := errors.New("refused")
	m.newClient = func(*mqtt.ClientOptions) mqtt.Client { return &fakeClient{connectErr: boom} }

	assert.ErrorIs(t, m.Connect(), boom)
}

func TestOnConnect(t *testing.T) {
	m, client, _ := newTestMQTT(t, true)
	m.onConnect(client)

	status, ok := client.last("crc8calc/status")
	require.True(t, ok)
	assert.Equal(t, "online", string(status.payload))
	assert.True(t, status.retain)

	assert.ElementsMatch(t, []string{
		"crc8calc/compute/hex",
		"crc8calc/compute/text",
		"crc8calc/history/command",
	}, client.subscribed)

	cfgMsg, ok := client.last("crc8calc/config")
	require.True(t, ok)
	assert.JSONEq(t, `{"algorithm":"CRC-8/MAXIM","polynomial":"0x8C","init":"0x00","formats":["hex","text"]}`, string(cfgMsg.payload))
}

func TestOnConnectWithoutHistory(t *testing.T) {
	m, client, _ := newTestMQTT(t, false)
	m.onConnect(client)

	assert.NotContains(t, client.subscribed, "crc8calc/history/command")
}

func TestHandleComputeHex(t *testing.T) {
	m, client, h := newTestMQTT(t, true)

	m.handleMessage(client, &fakeMessage{topic: "crc8calc/compute/hex", payload: []byte("C8 64\x00")})

	msg, ok := client.last("crc8calc/result/crc-8-maxim")
	require.True(t, ok)

	var r crc8.Result
	require.NoError(t, json.Unmarshal(msg.payload, &r))
	assert.True(t, r.Success)
	assert.Equal(t, "0xC6", r.Hex)
	assert.Equal(t, 2, r.DataLength)

	entries := h.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "C8 64", entries[0].Input)

	hist, ok := client.last("crc8calc/history")
	require.True(t, ok)
	var listed []history.Entry
	require.NoError(t, json.Unmarshal(hist.payload, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, entries[0].ID, listed[0].ID)
}

func TestHandleComputeText(t *testing.T) {
	m, client, _ := newTestMQTT(t, false)

	m.handleMessage(client, &fakeMessage{topic: "crc8calc/compute/text", payload: []byte("123456789")})

	msg, ok := client.last("crc8calc/result/crc-8-maxim")
	require.True(t, ok)
	assert.Contains(t, string(msg.payload), `"hex":"0xA1"`)
	_, ok = client.last("crc8calc/history")
	assert.False(t, ok)
}

func TestHandleComputeInvalid(t *testing.T) {
	m, client, h := newTestMQTT(t, true)

	m.handleMessage(client, &fakeMessage{topic: "crc8calc/compute/hex", payload: []byte("12G4")})

	msg, ok := client.last("crc8calc/result/crc-8-maxim")
	require.True(t, ok)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.payload, &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "invalid hex format")
	assert.NotContains(t, body, "hex")
	assert.Empty(t, h.List())
}

func TestHandleHistoryClear(t *testing.T) {
	m, client, h := newTestMQTT(t, true)

	m.handleMessage(client, &fakeMessage{topic: "crc8calc/compute/hex", payload: []byte("FF")})
	require.Len(t, h.List(), 1)

	m.handleMessage(client, &fakeMessage{topic: "crc8calc/history/command", payload: []byte("CLEAR")})
	assert.Empty(t, h.List())

	hist, ok := client.last("crc8calc/history")
	require.True(t, ok)
	assert.Equal(t, "[]", string(hist.payload))
}

func TestHandleUnknownTopic(t *testing.T) {
	m, client, _ := newTestMQTT(t, true)
	before := len(client.published)

	m.handleMessage(client, &fakeMessage{topic: "crc8calc/other", payload: []byte("x")})

	assert.Len(t, client.published, before)
}

func TestPublishRawPayloads(t *testing.T) {
	m, client, _ := newTestMQTT(t, false)

	m.Publish("a", "text", false)
	m.Publish("b", []byte{1, 2}, false)
	m.Publish("c", map[string]int{"n": 1}, true)

	a, _ := client.last("a")
	b, _ := client.last("b")
	c, _ := client.last("c")
	assert.Equal(t, "text", string(a.payload))
	assert.Equal(t, []byte{1, 2}, b.payload)
	assert.JSONEq(t, `{"n":1}`, string(c.payload))
	assert.True(t, c.retain)
}

func TestClose(t *testing.T) {
	m, client, _ := newTestMQTT(t, false)

	m.Close()

	status, ok := client.last("crc8calc/status")
	require.True(t, ok)
	assert.Equal(t, "offline", string(status.payload))
	assert.True(t, client.disconnected)
}

func TestTopics(t *testing.T) {
	topics := NewTopics("lab")
	assert.Equal(t, "lab/status", topics.Status())
	assert.Equal(t, "lab/config", topics.Config())
	assert.Equal(t, "lab/compute/hex", topics.Compute(crc8.FormatHex))
	assert.Equal(t, "lab/compute/text", topics.Compute(crc8.FormatText))
	assert.Equal(t, "lab/result/crc-8-maxim", topics.Result("CRC-8/MAXIM"))
	assert.Equal(t, "lab/history", topics.History())
	assert.Equal(t, "lab/history/command", topics.HistoryCommand())
}

func TestParseURL(t *testing.T) {
	host, port, err := ParseURL("mqtt://broker.local:8883")
	require.NoError(t, err)
	assert.Equal(t, "broker.local", host)
	assert.Equal(t, 8883, port)

	host, port, err = ParseURL("broker.local")
	require.NoError(t, err)
	assert.Equal(t, "broker.local", host)
	assert.Equal(t, 1883, port)

	for _, bad := range []string{"", "mqtt://:1883", "host:abc", "host:0", "a:b:c"} {
		_, _, err := ParseURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestHistoryCommandWithoutHistory(t *testing.T) {
	m, client, _ := newTestMQTT(t, false)

	assert.NotPanics(t, func() {
		m.handleMessage(client, &fakeMessage{topic: "crc8calc/history/command", payload: []byte("clear")})
	})
	_, ok := client.last("crc8calc/history")
	assert.False(t, ok)
}
