package storages

import (
	"strings"
	"time"
)

// TimeLayout is the timestamp format stored in the messages table, always UTC.
const TimeLayout = time.DateTime

type Message struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	FromEmail   string    `json:"from_email"`
	FromName    string    `json:"from_name"`
	ToEmail     string    `json:"to_email"`
	ToName      string    `json:"to_name"`
	Subject     string    `json:"subject"`
	Content     string    `json:"content"`
	Links       []string  `json:"links"`
	Attachments []string  `json:"attachments"`
	MessageID   string    `json:"message_id"`
	ThreadID    string    `json:"thread_id"`
}

// joinList encodes a list column: trimmed, non-empty items joined by commas.
func joinList(items []string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts = append(parts, item)
	}
	return strings.Join(parts, ",")
}

// ListColumns are stored comma-joined and read back with SplitList.
var ListColumns = []string{"links", "attachments"}

func SplitList(column string) []string {
	var ret []string
	for item := range strings.SplitSeq(column, ",") {
		if item = strings.TrimSpace(item); item != "" {
			ret = append(ret, item)
		}
	}
	return ret
}
