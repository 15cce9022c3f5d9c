package amqp

import (
	"testing"
	"time"
)

func TestNewDatasetRefreshMessage(t *testing.T) {
	msg := NewDatasetRefreshMessage("ingest-pipeline", "annual_hicp", "monthly_hicp")

	if msg.Source != "ingest-pipeline" {
		t.Errorf("NewDatasetRefreshMessage() Source = %v, want ingest-pipeline", msg.Source)
	}
	if len(msg.Datasets) != 2 {
		t.Errorf("NewDatasetRefreshMessage() Datasets = %v, want 2 entries", msg.Datasets)
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewDatasetRefreshMessage() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewDatasetRefreshMessage() Timestamp should be recent")
	}
}

func TestDatasetRefreshMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &DatasetRefreshMessage{
		Datasets:  []string{"income"},
		Source:    "manual",
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := DatasetRefreshMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("DatasetRefreshMessageFromJSON() error = %v", err)
	}

	if parsedMsg.Source != msg.Source {
		t.Errorf("Parsed Source = %v, want %v", parsedMsg.Source, msg.Source)
	}
	if len(parsedMsg.Datasets) != 1 || parsedMsg.Datasets[0] != "income" {
		t.Errorf("Parsed Datasets = %v, want [income]", parsedMsg.Datasets)
	}
	if !parsedMsg.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsedMsg.Timestamp, msg.Timestamp)
	}
}

func TestDatasetRefreshMessage_EmptyMeansAll(t *testing.T) {
	msg := NewDatasetRefreshMessage("manual")

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := DatasetRefreshMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("DatasetRefreshMessageFromJSON() error = %v", err)
	}
	if len(parsedMsg.Datasets) != 0 {
		t.Errorf("Parsed Datasets = %v, want empty (refresh all)", parsedMsg.Datasets)
	}
}

func TestDatasetRefreshMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"datasets": "not_a_list"}`)

	_, err := DatasetRefreshMessageFromJSON(invalidJSON)
	if err == nil {
		t.Error("DatasetRefreshMessageFromJSON() should fail with invalid JSON")
	}
}
