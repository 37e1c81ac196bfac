package events

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterevents "github.com/marcos-nsantos/image-pipeline/internal/adapter/events"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/config"
)

type fakeKinesis struct {
	inputs []*kinesis.PutRecordInput
	err    error
}

func (f *fakeKinesis) PutRecord(_ context.Context, in *kinesis.PutRecordInput, _ ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &kinesis.PutRecordOutput{}, nil
}

func TestKinesisPublisher_Publish(t *testing.T) {
	t.Run("partitions by key", func(t *testing.T) {
		fake := &fakeKinesis{}
		p := NewKinesisPublisher(fake, "image-events")

		err := p.Publish(context.Background(), "img1", []byte(`{"imageId":"img1"}`))
		require.NoError(t, err)

		require.Len(t, fake.inputs, 1)
		assert.Equal(t, "image-events", aws.ToString(fake.inputs[0].StreamName))
		assert.Equal(t, "img1", aws.ToString(fake.inputs[0].PartitionKey))
		assert.JSONEq(t, `{"imageId":"img1"}`, string(fake.inputs[0].Data))
	})

	t.Run("wraps errors", func(t *testing.T) {
		fake := &fakeKinesis{err: errors.New("throttled")}
		p := NewKinesisPublisher(fake, "image-events")

		err := p.Publish(context.Background(), "img1", nil)
		assert.ErrorContains(t, err, "throttled")
	})
}

func TestNewPublisher(t *testing.T) {
	t.Run("none yields nop publisher", func(t *testing.T) {
		p, err := NewPublisher(config.PipelineConfig{EventsDriver: config.EventsDriverNone}, aws.Config{})
		require.NoError(t, err)
		assert.IsType(t, adapterevents.NopPublisher{}, p)
	})

	t.Run("kinesis", func(t *testing.T) {
		p, err := NewPublisher(config.PipelineConfig{EventsDriver: config.EventsDriverKinesis, StreamName: "s"}, aws.Config{Region: "us-east-1"})
		require.NoError(t, err)
		assert.IsType(t, &KinesisPublisher{}, p)
	})

	t.Run("kafka", func(t *testing.T) {
		p, err := NewPublisher(config.PipelineConfig{
			EventsDriver: config.EventsDriverKafka,
			StreamName:   "image-events",
			KafkaBrokers: []string{"localhost:9092"},
		}, aws.Config{})
		require.NoError(t, err)
		assert.IsType(t, &KafkaPublisher{}, p)
		assert.NoError(t, p.Close())
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewPublisher(config.PipelineConfig{EventsDriver: "carrier-pigeon"}, aws.Config{})
		assert.Error(t, err)
	})
}
