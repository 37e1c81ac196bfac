// Package message decodes queue bodies into the payloads the consumer
// dispatches on.
package message

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
)

// Payload is one of FinalizationBatch, ResizeTask or Unknown.
type Payload interface {
	payload()
}

// ObjectRef is one finalized object. Key is still percent-encoded as sent
// by the storage notification.
type ObjectRef struct {
	Bucket string
	Key    string
}

type FinalizationBatch struct {
	Records []ObjectRef
}

type ResizeTask struct {
	Task entity.ResizeTask
}

type Unknown struct {
	Body   []byte
	Reason string
}

func (FinalizationBatch) payload() {}
func (ResizeTask) payload()        {}
func (Unknown) payload()           {}

// Decode never fails: anything that is not a finalization batch or a resize
// task comes back as Unknown with the reason.
func Decode(body []byte) Payload {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return Unknown{Body: body, Reason: fmt.Sprintf("malformed json: %v", err)}
	}

	if _, ok := probe["Records"]; ok {
		var evt events.S3Event
		if err := json.Unmarshal(body, &evt); err != nil {
			return Unknown{Body: body, Reason: fmt.Sprintf("malformed storage notification: %v", err)}
		}

		batch := FinalizationBatch{Records: make([]ObjectRef, 0, len(evt.Records))}
		for _, rec := range evt.Records {
			batch.Records = append(batch.Records, ObjectRef{
				Bucket: rec.S3.Bucket.Name,
				Key:    rec.S3.Object.Key,
			})
		}
		return batch
	}

	var kind string
	if raw, ok := probe["type"]; ok {
		_ = json.Unmarshal(raw, &kind)
	}
	if kind == entity.TaskTypeResize {
		var task entity.ResizeTask
		if err := json.Unmarshal(body, &task); err != nil {
			return Unknown{Body: body, Reason: fmt.Sprintf("malformed resize task: %v", err)}
		}
		return ResizeTask{Task: task}
	}

	return Unknown{Body: body, Reason: "unrecognised payload"}
}

func EncodeResizeTask(task entity.ResizeTask) ([]byte, error) {
	body, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("encoding resize task: %w", err)
	}
	return body, nil
}

// Preview returns at most n bytes of body for logging.
func Preview(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n])
}
