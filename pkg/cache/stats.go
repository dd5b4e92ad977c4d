package cache

import (
	"bufio"
	"strconv"
	"strings"
)

// Stats is a snapshot of aggregate counters reported by the cache backend.
type Stats struct {
	TotalConnectionsReceived int64  `json:"total_connections_received"`
	TotalCommandsProcessed   int64  `json:"total_commands_processed"`
	KeyspaceHits             int64  `json:"keyspace_hits"`
	KeyspaceMisses           int64  `json:"keyspace_misses"`
	UsedMemoryHuman          string `json:"used_memory_human"`
	ConnectedClients         int64  `json:"connected_clients"`
}

// IsZero reports whether s carries no data, which is what Stats returns
// when the backend could not be queried.
func (s Stats) IsZero() bool {
	return s == Stats{}
}

// parseInfo converts the text of a Redis INFO reply into Stats.
// Missing or malformed counters are left at zero.
func parseInfo(info string) Stats {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(info))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[name] = value
	}

	stats := Stats{
		TotalConnectionsReceived: infoInt(fields, "total_connections_received"),
		TotalCommandsProcessed:   infoInt(fields, "total_commands_processed"),
		KeyspaceHits:             infoInt(fields, "keyspace_hits"),
		KeyspaceMisses:           infoInt(fields, "keyspace_misses"),
		UsedMemoryHuman:          fields["used_memory_human"],
		ConnectedClients:         infoInt(fields, "connected_clients"),
	}
	if stats.UsedMemoryHuman == "" {
		stats.UsedMemoryHuman = "0B"
	}
	return stats
}

func infoInt(fields map[string]string, name string) int64 {
	n, err := strconv.ParseInt(fields[name], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
