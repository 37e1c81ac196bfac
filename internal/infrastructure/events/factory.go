package events

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"

	adapterevents "github.com/marcos-nsantos/image-pipeline/internal/adapter/events"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/config"
)

// NewPublisher returns the publisher for the configured driver. StreamName
// is the kinesis stream, the kafka topic or the nats subject.
func NewPublisher(cfg config.PipelineConfig, awsCfg aws.Config) (adapterevents.Publisher, error) {
	switch cfg.EventsDriver {
	case config.EventsDriverKinesis:
		return NewKinesisPublisher(kinesis.NewFromConfig(awsCfg), cfg.StreamName), nil
	case config.EventsDriverKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.StreamName), nil
	case config.EventsDriverNATS:
		return NewNATSPublisher(cfg.NATSURL, cfg.StreamName)
	case config.EventsDriverNone, "":
		return adapterevents.NopPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.EventsDriver)
	}
}
