package mqtt

import (
	"fmt"
	"strconv"
	"strings"
)

const defaultPort = 1883

// ParseURL splits "mqtt://host:port" (scheme and port optional) into host and port.
func ParseURL(urlStr string) (string, int, error) {
	urlStr = strings.TrimPrefix(urlStr, "mqtt://")
	urlStr = strings.TrimPrefix(urlStr, "tcp://")
	parts := strings.Split(urlStr, ":")
	if parts[0] == "" {
		return "", 0, fmt.Errorf("missing broker host in %q", urlStr)
	}
	if len(parts) == 1 {
		return parts[0], defaultPort, nil
	}
	if len(parts) > 2 {
		return "", 0, fmt.Errorf("invalid broker address %q", urlStr)
	}
	port, err := strconv.Atoi(parts[1])
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("invalid broker port %q", parts[1])
	}
	return parts[0], port, nil
}
