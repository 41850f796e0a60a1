package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/daemonp/crc8calc/internal/config"
	"github.com/daemonp/crc8calc/internal/crc8"
	"github.com/daemonp/crc8calc/internal/history"
	"github.com/daemonp/crc8calc/internal/log"
	"github.com/daemonp/crc8calc/internal/util"
)

const (
	offlinePayload = "offline"
	onlinePayload  = "online"

	historyClearCommand = "clear"
)

type MQTT struct {
	config    *config.MQTTConfig
	history   *history.History
	log       *log.Logger
	client    mqtt.Client
	topics    *Topics
	newClient func(*mqtt.ClientOptions) mqtt.Client
	mu        sync.Mutex
}

// NewMQTT creates the request/response adapter. h may be nil, in which case
// nothing is recorded.
func NewMQTT(cfg *config.MQTTConfig, h *history.History, logger *log.Logger) *MQTT {
	return &MQTT{
		config:    cfg,
		history:   h,
		log:       logger,
		topics:    NewTopics(cfg.Prefix),
		newClient: mqtt.NewClient,
	}
}

func (m *MQTT) GetPrefix() string {
	return m.config.Prefix
}

func (m *MQTT) Topics() *Topics {
	return m.topics
}

func (m *MQTT) Connect() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", m.config.Host, m.config.Port))
	opts.SetClientID(m.config.ClientID)
	opts.SetUsername(m.config.Username)
	opts.SetPassword(m.config.Password)
	opts.SetCleanSession(m.config.CleanSession())
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(m.onConnect)
	opts.SetConnectionLostHandler(m.onDisconnect)

	opts.SetWill(m.topics.Status(), offlinePayload, byte(m.config.QOS), true)

	m.client = m.newClient(opts)

	if token := m.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	m.log.Info("Connected to MQTT broker: %s:%d", m.config.Host, m.config.Port)
	return nil
}

func (m *MQTT) onConnect(client mqtt.Client) {
	m.log.Info("MQTT connection established")
	m.publishOnlineStatus()
	m.subscribeTopics()
	m.publishAlgorithm()
}

func (m *MQTT) onDisconnect(client mqtt.Client, err error) {
	m.log.Error("MQTT connection lost: %v", err)
}

func (m *MQTT) subscribeTopics() {
	topics := []string{
		m.topics.Compute(crc8.FormatHex),
		m.topics.Compute(crc8.FormatText),
	}
	if m.history != nil {
		topics = append(topics, m.topics.HistoryCommand())
	}

	for _, topic := range topics {
		token := m.client.Subscribe(topic, byte(m.config.QOS), m.handleMessage)
		if token.Wait() && token.Error() != nil {
			m.log.Error("Failed to subscribe to topic %s: %v", topic, token.Error())
		} else {
			m.log.Debug("Subscribed to topic: %s", topic)
		}
	}
}

func (m *MQTT) handleMessage(client mqtt.Client, msg mqtt.Message) {
	topic := msg.Topic()
	payload := string(msg.Payload())

	m.log.Debug("Received message on topic %s: %q", topic, payload)

	switch topic {
	case m.topics.Compute(crc8.FormatHex):
		m.handleCompute(util.Normalize(payload), crc8.FormatHex)
	case m.topics.Compute(crc8.FormatText):
		m.handleCompute(payload, crc8.FormatText)
	case m.topics.HistoryCommand():
		m.handleHistoryCommand(util.Normalize(payload))
	default:
		m.log.Warning("Received message on unknown topic: %s", topic)
	}
}

func (m *MQTT) handleCompute(input string, format crc8.Format) {
	result := crc8.Compute(input, format)
	if result.Success {
		m.log.Info("%s %s (%d bytes) = %s", format, input, result.DataLength, result.Hex)
	} else {
		m.log.Warning("Rejected %s input %q: %s", format, input, result.Error)
	}

	m.PublishResult(result)

	if !result.Success || m.history == nil {
		return
	}
	if _, err := m.history.Add(input, format, result); err != nil {
		m.log.Error("Failed to record result: %v", err)
		return
	}
	m.PublishHistory()
}

func (m *MQTT) handleHistoryCommand(command string) {
	if m.history == nil {
		m.log.Warning("History command %q ignored, history is not enabled", command)
		return
	}

	switch strings.ToLower(command) {
	case historyClearCommand:
		if err := m.history.Clear(); err != nil {
			m.log.Error("Failed to clear history: %v", err)
			return
		}
		m.log.Info("History cleared")
		m.PublishHistory()
	default:
		m.log.Warning("Unknown history command: %s", command)
	}
}

func (m *MQTT) publishOnlineStatus() {
	m.publish(m.topics.Status(), onlinePayload, true)
}

func (m *MQTT) publishAlgorithm() {
	p := crc8.Maxim
	status := map[string]interface{}{
		"algorithm":  p.Name,
		"polynomial": fmt.Sprintf("0x%X", p.Polynomial),
		"init":       fmt.Sprintf("0x%02X", p.Init),
		"formats":    []crc8.Format{crc8.FormatHex, crc8.FormatText},
	}
	m.publish(m.topics.Config(), status, true)
}

// PublishResult publishes r on the result topic of the CRC-8/MAXIM algorithm.
func (m *MQTT) PublishResult(r crc8.Result) {
	m.publish(m.topics.Result(crc8.Maxim.Name), r, m.config.Retain)
}

// PublishHistory publishes the current history list, newest first.
func (m *MQTT) PublishHistory() {
	if m.history == nil {
		return
	}
	m.publish(m.topics.History(), m.history.List(), true)
}

func (m *MQTT) Publish(topic string, payload interface{}, retain bool) {
	m.publish(topic, payload, retain)
}

func (m *MQTT) publish(topic string, message interface{}, retain bool) {
	var payload []byte
	switch v := message.(type) {
	case string:
		payload = []byte(v)
	case []byte:
		payload = v
	default:
		data, err := json.Marshal(message)
		if err != nil {
			m.log.Error("Failed to marshal message for topic %s: %v", topic, err)
			return
		}
		payload = data
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.client.Publish(topic, byte(m.config.QOS), retain, payload)
	if token.Wait() && token.Error() != nil {
		m.log.Error("Failed to publish message to topic %s: %v", topic, token.Error())
	} else {
		m.log.Debug("Published message to topic: %s", topic)
	}
}

func (m *MQTT) Close() {
	if m.client != nil && m.client.IsConnected() {
		m.publish(m.topics.Status(), offlinePayload, true)
		m.client.Disconnect(250)
	}
}
