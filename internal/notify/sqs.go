package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSNotifier publishes status events to an AWS SQS queue.
type SQSNotifier struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSNotifier constructs an SQS-backed notifier for the given queue.
func NewSQSNotifier(ctx context.Context, region, queueURL string) (*SQSNotifier, error) {
	if queueURL == "" {
		return nil, fmt.Errorf("queue URL is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SQSNotifier{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}, nil
}

// StatusChanged delivers the event to the configured queue.
func (n *SQSNotifier) StatusChanged(ctx context.Context, event StatusEvent) error {
	payload, err := EncodeEvent(event)
	if err != nil {
		return fmt.Errorf("encode status event: %w", err)
	}
	_, err = n.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.queueURL),
		MessageBody: aws.String(string(payload)),
	})
	if err != nil {
		return fmt.Errorf("sqs send message: %w", err)
	}
	return nil
}

var _ Notifier = (*SQSNotifier)(nil)
