package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ResumeStatus string

const (
	StatusQueued    ResumeStatus = "queued"
	StatusParsing   ResumeStatus = "parsing"
	StatusReady     ResumeStatus = "ready"
	StatusAnalyzing ResumeStatus = "analyzing"
	StatusDone      ResumeStatus = "done"
	StatusError     ResumeStatus = "error"
)

// statusRank orders the lifecycle. A record may only move forward; error and
// done are terminal.
var statusRank = map[ResumeStatus]int{
	StatusQueued:    0,
	StatusParsing:   1,
	StatusReady:     2,
	StatusAnalyzing: 3,
	StatusDone:      4,
	StatusError:     4,
}

// CanTransition reports whether a record may move from one status to another.
func CanTransition(from, to ResumeStatus) bool {
	if from == StatusDone || from == StatusError {
		return false
	}
	return statusRank[to] > statusRank[from]
}

// ResumeRecord tracks one uploaded or fetched resume through its lifecycle.
// The raw file bytes are held until the parsing stage consumes them.
type ResumeRecord struct {
	ID           uuid.UUID    `json:"id"`
	Filename     string       `json:"filename"`
	DisplayName  string       `json:"display_name"`
	Status       ResumeStatus `json:"status"`
	Text         string       `json:"-"`
	ErrorMessage string       `json:"error_message,omitempty"`
	SourceURL    string       `json:"source_url,omitempty"`
	Size         int64        `json:"size"`
	ModTime      time.Time    `json:"-"`
	Data         []byte       `json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
}

// RecordID derives a stable identity from filename, size and modification
// time, so the same file object is never ingested twice.
func RecordID(filename string, size int64, modTime time.Time) uuid.UUID {
	key := fmt.Sprintf("%s|%d|%d", filename, size, modTime.UnixNano())
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key))
}

// NewResumeRecord creates a queued record whose display name starts out as
// the filename.
func NewResumeRecord(filename string, data []byte, modTime time.Time) ResumeRecord {
	size := int64(len(data))
	return ResumeRecord{
		ID:          RecordID(filename, size, modTime),
		Filename:    filename,
		DisplayName: filename,
		Status:      StatusQueued,
		Size:        size,
		ModTime:     modTime,
		Data:        data,
		CreatedAt:   time.Now(),
	}
}
