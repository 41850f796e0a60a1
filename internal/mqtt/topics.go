package mqtt

import (
	"fmt"

	"github.com/daemonp/crc8calc/internal/crc8"
	"github.com/daemonp/crc8calc/internal/util"
)

type Topics struct {
	prefix string
}

func NewTopics(prefix string) *Topics {
	return &Topics{prefix: prefix}
}

func (t *Topics) Status() string {
	return fmt.Sprintf("%s/status", t.prefix)
}

func (t *Topics) Config() string {
	return fmt.Sprintf("%s/config", t.prefix)
}

// Compute is the request topic for inputs in the given format.
func (t *Topics) Compute(format crc8.Format) string {
	return fmt.Sprintf("%s/compute/%s", t.prefix, format)
}

// Result is where results for the named algorithm are published.
func (t *Topics) Result(algorithm string) string {
	return fmt.Sprintf("%s/result/%s", t.prefix, util.Slugify(algorithm))
}

func (t *Topics) History() string {
	return fmt.Sprintf("%s/history", t.prefix)
}

func (t *Topics) HistoryCommand() string {
	return fmt.Sprintf("%s/history/command", t.prefix)
}
