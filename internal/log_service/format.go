package log_service

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FormatLog renders an event as a single log line. Metadata keys are sorted
// so lines are stable across runs.
func FormatLog(level string, nodeID string, event LogEvent) string {
	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	node := event.NodeID
	if node == "" {
		node = nodeID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format(time.RFC3339Nano), level, node, event.Message)

	if len(event.Metadata) > 0 {
		keys := make([]string, 0, len(event.Metadata))
		for k := range event.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, event.Metadata[k])
		}
	}

	return b.String()
}
