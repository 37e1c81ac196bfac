package entity

import "time"

// UploadGrant is a presigned POST that lets a client put exactly one object
// under a fixed key, within a byte-size range, before ExpiresAt.
type UploadGrant struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Fields    map[string]string `json:"fields"`
	ExpiresAt time.Time         `json:"expiresAt"`
}
