package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/marcos-nsantos/image-pipeline/internal/domain/valueobject"
)

const (
	MetadataDriverDynamo   = "dynamodb"
	MetadataDriverPostgres = "postgres"

	EventsDriverKinesis = "kinesis"
	EventsDriverKafka   = "kafka"
	EventsDriverNATS    = "nats"
	EventsDriverNone    = "none"

	AckAlways    = "always"
	AckOnSuccess = "on-success"
)

// PipelineConfig holds the values shared by the intake, ingest and resize
// components.
type PipelineConfig struct {
	Region             string
	Bucket             string
	MetadataTable      string
	IngestQueueURL     string
	ResizeQueueURL     string
	StreamName         string
	DefaultSizes       []string
	URLExpiry          time.Duration
	DownloadURLExpiry  time.Duration
	MaxSizeMB          int
	MetadataDriver     string
	EventsDriver       string
	KafkaBrokers       []string
	NATSURL            string
	AckPolicy          string
	ReceiveMaxMessages int
	ReceiveWait        time.Duration
	VisibilityTimeout  time.Duration
	HeartbeatInterval  time.Duration
	ErrorBackoff       time.Duration
}

func (p PipelineConfig) MaxUploadBytes() int64 {
	return int64(p.MaxSizeMB) * 1024 * 1024
}

var pipelineDefaults = map[string]any{
	"region":                      "us-east-1",
	"bucket_name":                 "",
	"ddb_table_metadata":          "",
	"ingest_queue_url":            "",
	"resize_queue_url":            "",
	"kinesis_stream_name":         "",
	"events_stream_name":          "",
	"default_sizes":               "thumb,medium,large",
	"url_expiry_seconds":          900,
	"download_url_expiry_seconds": 300,
	"max_size_mb":                 25,
	"metadata_driver":             MetadataDriverDynamo,
	"events_driver":               "",
	"kafka_brokers":               "",
	"nats_url":                    "",
	"ack_policy":                  AckAlways,
	"receive_max_messages":        5,
	"receive_wait_seconds":        20,
	"visibility_timeout_seconds":  60,
	"heartbeat_interval":          "60s",
	"error_backoff":               "1s",
}

// LoadPipeline resolves the pipeline settings. Precedence, highest first:
// environment variables, the remote document, then the defaults above.
// Keys are matched case-insensitively, so a remote document may use either
// bucket_name or BUCKET_NAME. Empty values never override a lower layer.
func LoadPipeline(remote map[string]any) (PipelineConfig, error) {
	v := viper.New()
	for key, def := range pipelineDefaults {
		v.SetDefault(key, def)
	}

	if doc := dropEmpty(remote); len(doc) > 0 {
		if err := v.MergeConfigMap(doc); err != nil {
			return PipelineConfig{}, fmt.Errorf("merging remote config: %w", err)
		}
	}

	for key := range pipelineDefaults {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return PipelineConfig{}, fmt.Errorf("binding env %s: %w", key, err)
		}
	}

	cfg := PipelineConfig{
		Region:             v.GetString("region"),
		Bucket:             v.GetString("bucket_name"),
		MetadataTable:      v.GetString("ddb_table_metadata"),
		IngestQueueURL:     v.GetString("ingest_queue_url"),
		ResizeQueueURL:     v.GetString("resize_queue_url"),
		StreamName:         firstNonEmpty(v.GetString("events_stream_name"), v.GetString("kinesis_stream_name")),
		DefaultSizes:       stringList(v.Get("default_sizes")),
		URLExpiry:          time.Duration(v.GetInt("url_expiry_seconds")) * time.Second,
		DownloadURLExpiry:  time.Duration(v.GetInt("download_url_expiry_seconds")) * time.Second,
		MaxSizeMB:          v.GetInt("max_size_mb"),
		MetadataDriver:     strings.ToLower(v.GetString("metadata_driver")),
		EventsDriver:       strings.ToLower(v.GetString("events_driver")),
		KafkaBrokers:       stringList(v.Get("kafka_brokers")),
		NATSURL:            v.GetString("nats_url"),
		AckPolicy:          strings.ToLower(v.GetString("ack_policy")),
		ReceiveMaxMessages: v.GetInt("receive_max_messages"),
		ReceiveWait:        time.Duration(v.GetInt("receive_wait_seconds")) * time.Second,
		VisibilityTimeout:  time.Duration(v.GetInt("visibility_timeout_seconds")) * time.Second,
		HeartbeatInterval:  v.GetDuration("heartbeat_interval"),
		ErrorBackoff:       v.GetDuration("error_backoff"),
	}

	if len(cfg.DefaultSizes) == 0 {
		cfg.DefaultSizes = valueobject.ParseSizeList(pipelineDefaults["default_sizes"].(string))
	}
	if cfg.EventsDriver == "" {
		cfg.EventsDriver = EventsDriverNone
		if cfg.StreamName != "" {
			cfg.EventsDriver = EventsDriverKinesis
		}
	}

	if err := cfg.check(); err != nil {
		return PipelineConfig{}, err
	}
	return cfg, nil
}

func (p PipelineConfig) check() error {
	switch p.MetadataDriver {
	case MetadataDriverDynamo, MetadataDriverPostgres:
	default:
		return fmt.Errorf("unknown metadata driver %q", p.MetadataDriver)
	}

	switch p.EventsDriver {
	case EventsDriverKinesis, EventsDriverKafka, EventsDriverNATS, EventsDriverNone:
	default:
		return fmt.Errorf("unknown events driver %q", p.EventsDriver)
	}

	switch p.AckPolicy {
	case AckAlways, AckOnSuccess:
	default:
		return fmt.Errorf("unknown ack policy %q", p.AckPolicy)
	}

	if p.MaxSizeMB <= 0 {
		return fmt.Errorf("max_size_mb must be positive, got %d", p.MaxSizeMB)
	}
	if p.ReceiveMaxMessages < 1 || p.ReceiveMaxMessages > 10 {
		return fmt.Errorf("receive_max_messages must be within 1..10, got %d", p.ReceiveMaxMessages)
	}
	return nil
}

func (p PipelineConfig) missing(role Role) []string {
	var missing []string
	if p.Bucket == "" {
		missing = append(missing, "BUCKET_NAME")
	}
	if p.MetadataDriver == MetadataDriverDynamo && p.MetadataTable == "" {
		missing = append(missing, "DDB_TABLE_METADATA")
	}
	if role == RoleWorker {
		if p.IngestQueueURL == "" {
			missing = append(missing, "INGEST_QUEUE_URL")
		}
		if p.ResizeQueueURL == "" {
			missing = append(missing, "RESIZE_QUEUE_URL")
		}
	}

	switch p.EventsDriver {
	case EventsDriverKinesis:
		if p.StreamName == "" {
			missing = append(missing, "KINESIS_STREAM_NAME")
		}
	case EventsDriverKafka, EventsDriverNATS:
		if p.StreamName == "" {
			missing = append(missing, "EVENTS_STREAM_NAME")
		}
	}
	if p.EventsDriver == EventsDriverKafka && len(p.KafkaBrokers) == 0 {
		missing = append(missing, "KAFKA_BROKERS")
	}
	if p.EventsDriver == EventsDriverNATS && p.NATSURL == "" {
		missing = append(missing, "NATS_URL")
	}
	return missing
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func dropEmpty(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

// stringList accepts a comma separated string or a list from a JSON document.
func stringList(raw any) []string {
	switch v := raw.(type) {
	case string:
		return valueobject.ParseSizeList(v)
	case []string:
		return valueobject.ParseSizeList(strings.Join(v, ","))
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return valueobject.ParseSizeList(strings.Join(parts, ","))
	default:
		return nil
	}
}
