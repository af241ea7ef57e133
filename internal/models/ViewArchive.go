package models

import "time"

// ViewArchive is the on-disk form of one archived day partition.
type ViewArchive struct {
	Day        string          `json:"day"`
	ArchivedAt time.Time       `json:"archived_at"`
	Entries    []*ViewLogEntry `json:"entries"`
}
