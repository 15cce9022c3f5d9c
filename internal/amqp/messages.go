package amqp

import (
	"encoding/json"
	"time"
)

// DatasetRefreshMessage asks the service to re-read the CSV datasets.
// Datasets names the files that changed; empty means refresh all. The
// consumer reloads everything either way since the loader memoizes by
// mtime, but the names are logged for traceability.
type DatasetRefreshMessage struct {
	Datasets  []string  `json:"datasets,omitempty"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewDatasetRefreshMessage creates a refresh message for the named
// datasets.
func NewDatasetRefreshMessage(source string, datasets ...string) *DatasetRefreshMessage {
	return &DatasetRefreshMessage{
		Datasets:  datasets,
		Source:    source,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DatasetRefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func DatasetRefreshMessageFromJSON(data []byte) (*DatasetRefreshMessage, error) {
	var msg DatasetRefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
