package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
)

type KinesisAPI interface {
	PutRecord(ctx context.Context, params *kinesis.PutRecordInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error)
}

type KinesisPublisher struct {
	client KinesisAPI
	stream string
}

func NewKinesisPublisher(client KinesisAPI, stream string) *KinesisPublisher {
	return &KinesisPublisher{client: client, stream: stream}
}

func (p *KinesisPublisher) Publish(ctx context.Context, partitionKey string, payload []byte) error {
	_, err := p.client.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   aws.String(p.stream),
		PartitionKey: aws.String(partitionKey),
		Data:         payload,
	})
	if err != nil {
		return fmt.Errorf("putting kinesis record: %w", err)
	}
	return nil
}

func (p *KinesisPublisher) Close() error { return nil }
