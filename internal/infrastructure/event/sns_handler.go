package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/ikpixels/marketplace/internal/domain/order"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	infraconfig "github.com/ikpixels/marketplace/internal/infrastructure/config"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SNSAPI is the subset of the SNS client used for publishing
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSHandler forwards payment outcome events to an SNS topic. Subscribers
// filter on the event_type message attribute.
type SNSHandler struct {
	client   SNSAPI
	topicARN string
	logger   *zap.Logger
}

// NewSNSClient builds an SNS client for the configured region using the
// default AWS credential chain.
func NewSNSClient(ctx context.Context, cfg infraconfig.EventsConfig) (*sns.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.SNSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return sns.NewFromConfig(awsCfg), nil
}

// NewSNSHandler creates a handler publishing to topicARN
func NewSNSHandler(client SNSAPI, topicARN string, log *zap.Logger) (*SNSHandler, error) {
	if client == nil {
		return nil, errors.New("sns client is required")
	}
	if topicARN == "" {
		return nil, errors.New("sns topic ARN is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SNSHandler{client: client, topicARN: topicARN, logger: log}, nil
}

// EventTypes returns the payment outcome events
func (h *SNSHandler) EventTypes() []string {
	return []string{
		payment.EventTypePaymentSucceeded,
		payment.EventTypePaymentFailed,
		order.EventTypeOrderPaid,
	}
}

// Handle publishes evt as JSON
func (h *SNSHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", evt.EventType(), err)
	}

	out, err := h.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(h.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(evt.EventType()),
			},
			"aggregate_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(evt.AggregateType()),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", h.topicARN, err)
	}

	logger.Enrich(ctx, h.logger).Debug("Event published to SNS",
		zap.String("event_type", evt.EventType()),
		zap.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}

var _ shared.EventHandler = (*SNSHandler)(nil)
