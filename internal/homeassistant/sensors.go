package homeassistant

type sensor struct {
	objectID      string
	name          string
	valueTemplate string
	unit          string
	icon          string
}

// sensors are read from the JSON result published for every computation.
var sensors = []sensor{
	{
		objectID:      "checksum",
		name:          "Checksum",
		valueTemplate: "{{ value_json.hex if value_json.success else 'error' }}",
		icon:          "mdi:check-decagram",
	},
	{
		objectID:      "data_length",
		name:          "Data length",
		valueTemplate: "{{ value_json.dataLength | default(0) }}",
		unit:          "B",
	},
	{
		objectID:      "process_time",
		name:          "Process time",
		valueTemplate: "{{ value_json.processTime | default(0) }}",
		unit:          "µs",
		icon:          "mdi:timer-outline",
	},
}
