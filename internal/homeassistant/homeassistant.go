package homeassistant

import (
	"fmt"

	"github.com/daemonp/crc8calc/internal/config"
	"github.com/daemonp/crc8calc/internal/crc8"
	"github.com/daemonp/crc8calc/internal/log"
	"github.com/daemonp/crc8calc/internal/mqtt"
	"github.com/daemonp/crc8calc/internal/util"
)

type HomeAssistant struct {
	config *config.HomeAssistantConfig
	mqtt   mqtt.MQTTClient
	log    *log.Logger
}

func New(cfg *config.HomeAssistantConfig, mqttClient mqtt.MQTTClient, logger *log.Logger) *HomeAssistant {
	return &HomeAssistant{
		config: cfg,
		mqtt:   mqttClient,
		log:    logger,
	}
}

func (ha *HomeAssistant) Start() {
	ha.log.Info("Starting Home Assistant integration")
	ha.publishDiscoveryConfig()
}

func (ha *HomeAssistant) publishDiscoveryConfig() {
	for _, s := range sensors {
		ha.publishSensorConfig(s)
	}
	ha.publishStatusConfig()
}

func (ha *HomeAssistant) device() map[string]interface{} {
	return map[string]interface{}{
		"name":         ha.mqtt.GetPrefix(),
		"identifiers":  []string{ha.mqtt.GetPrefix()},
		"manufacturer": "crc8calc",
		"model":        fmt.Sprintf("%s (poly 0x%X)", crc8.Maxim.Name, crc8.Maxim.Polynomial),
	}
}

func (ha *HomeAssistant) publishSensorConfig(s sensor) {
	topic := ha.mqtt.Topics().Result(crc8.Maxim.Name)
	config := map[string]interface{}{
		"name":                  s.name,
		"unique_id":             ha.uniqueID(s.objectID),
		"state_topic":           topic,
		"json_attributes_topic": topic,
		"value_template":        s.valueTemplate,
		"availability_topic":    ha.mqtt.Topics().Status(),
		"device":                ha.device(),
	}
	if s.unit != "" {
		config["unit_of_measurement"] = s.unit
	}
	if s.icon != "" {
		config["icon"] = s.icon
	}

	ha.publishConfig("sensor", s.objectID, "", config)
}

func (ha *HomeAssistant) publishStatusConfig() {
	config := map[string]interface{}{
		"name":        "Status",
		"unique_id":   ha.uniqueID("status"),
		"state_topic": ha.mqtt.Topics().Status(),
		"payload_on":  "online",
		"payload_off": "offline",
		"device":      ha.device(),
	}

	ha.publishConfig("binary_sensor", "status", "connectivity", config)
}

func (ha *HomeAssistant) uniqueID(objectID string) string {
	return fmt.Sprintf("%s_%s_%s", ha.mqtt.GetPrefix(), util.Slugify(crc8.Maxim.Name), objectID)
}

func (ha *HomeAssistant) publishConfig(component, objectID, deviceClass string, config map[string]interface{}) {
	topic := fmt.Sprintf("%s/%s/%s/%s/config", ha.config.Prefix, component, ha.mqtt.GetPrefix(), objectID)

	if deviceClass != "" {
		config["device_class"] = deviceClass
	}

	ha.log.Debug("Publishing discovery config to %s", topic)
	ha.mqtt.Publish(topic, config, true)
}
