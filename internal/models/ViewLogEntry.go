package models

import "time"

// ViewLogEntry is one immutable "image was viewed" record.
type ViewLogEntry struct {
	PartitionKey   string    `json:"partition_key"`
	RowKey         string    `json:"row_key"`
	EntryTimestamp time.Time `json:"entry_timestamp"`
	ImageID        int       `json:"image_id"`
	Username       string    `json:"username"`
	Caption        string    `json:"caption"`
	AssetURI       string    `json:"uri"`
}
