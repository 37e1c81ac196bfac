package entity

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusUploaded  Status = "UPLOADED"
	StatusProcessed Status = "PROCESSED"
)

// Rank orders statuses along the PENDING -> UPLOADED -> PROCESSED path.
// Unknown values rank below PENDING.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 1
	case StatusUploaded:
		return 2
	case StatusProcessed:
		return 3
	default:
		return 0
	}
}

// Advance returns whichever of s and next is further along. Status never
// moves backward.
func (s Status) Advance(next Status) Status {
	if next.Rank() > s.Rank() {
		return next
	}
	return s
}

func (s Status) Valid() bool {
	return s.Rank() > 0
}

// ObjectInfo describes a stored object: the original upload or a variant.
type ObjectInfo struct {
	Key    string `json:"key" dynamodbav:"key"`
	Width  int    `json:"width" dynamodbav:"width"`
	Height int    `json:"height" dynamodbav:"height"`
	Bytes  int64  `json:"bytes" dynamodbav:"bytes"`
}

type Image struct {
	ID        string
	Status    Status
	CreatedAt time.Time
	Source    *ObjectInfo
	Variants  map[string]ObjectInfo
}

func NewImage(id string, now time.Time) *Image {
	return &Image{
		ID:        id,
		Status:    StatusPending,
		CreatedAt: now.UTC().Truncate(time.Second),
		Variants:  map[string]ObjectInfo{},
	}
}

// MarkUploaded applies the ingest merge in memory. Repeating it with the
// same source yields the same record.
func (i *Image) MarkUploaded(src ObjectInfo) {
	s := src
	i.Source = &s
	i.Status = i.Status.Advance(StatusUploaded)
}

// PutVariant applies the resize merge in memory. Status becomes PROCESSED
// on the first variant regardless of which sizes are still missing.
func (i *Image) PutVariant(size string, v ObjectInfo) {
	if i.Variants == nil {
		i.Variants = map[string]ObjectInfo{}
	}
	i.Variants[size] = v
	i.Status = i.Status.Advance(StatusProcessed)
}

// PendingSizes lists the sizes in want that have no variant yet, in order.
func (i *Image) PendingSizes(want []string) []string {
	pending := make([]string, 0, len(want))
	for _, size := range want {
		if _, ok := i.Variants[size]; !ok {
			pending = append(pending, size)
		}
	}
	return pending
}

const (
	keyPrefix      = "images"
	originalPrefix = "original"
)

func OriginalKey(id string) string {
	return fmt.Sprintf("%s/%s/%s", keyPrefix, id, originalPrefix)
}

func VariantKey(id, size string) string {
	return fmt.Sprintf("%s/%s/%s", keyPrefix, id, size)
}

// IsOriginalKey reports whether the last path segment of key marks an
// original upload ("original", "original.jpg", ...).
func IsOriginalKey(key string) bool {
	last := key
	if i := strings.LastIndex(key, "/"); i >= 0 {
		last = key[i+1:]
	}
	return strings.HasPrefix(last, originalPrefix)
}

// ImageIDFromKey returns the second path segment of an images/{id}/... key,
// or "" when the key does not have at least three segments.
func ImageIDFromKey(key string) string {
	parts := strings.Split(key, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}
