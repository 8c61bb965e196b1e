package amqp

import (
	"encoding/json"
	"time"
)

// ExportEvent announces one completed CSV export so downstream consumers
// (the audit worker) can record it without touching the file themselves.
type ExportEvent struct {
	Filename  string    `json:"filename"`
	RowCount  int       `json:"row_count"`
	ByteSize  int       `json:"byte_size"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExportEvent creates an event stamped with the current time.
func NewExportEvent(filename string, rowCount, byteSize int) *ExportEvent {
	return &ExportEvent{
		Filename:  filename,
		RowCount:  rowCount,
		ByteSize:  byteSize,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *ExportEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExportEventFromJSON creates an event from JSON bytes
func ExportEventFromJSON(data []byte) (*ExportEvent, error) {
	var ev ExportEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
