package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/quicksight"
	"github.com/aws/aws-sdk-go-v2/service/quicksight/types"

	"archreview/internal/config"
	"archreview/internal/models"
)

// sessionMinutes is how long an issued embed session stays valid.
const sessionMinutes = 600

var allowedDomains = []string{
	"http://localhost:5173",
	"http://localhost:3000",
}

// EmbedAPI is the slice of the QuickSight client the service needs.
type EmbedAPI interface {
	GenerateEmbedUrlForRegisteredUser(ctx context.Context, params *quicksight.GenerateEmbedUrlForRegisteredUserInput, optFns ...func(*quicksight.Options)) (*quicksight.GenerateEmbedUrlForRegisteredUserOutput, error)
}

// ConfigurationError reports missing embed configuration so callers can
// distinguish it from an upstream QuickSight failure.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// Service issues registered-user embed URLs for the generative Q&A
// experience.
type Service struct {
	client    EmbedAPI
	accountID string
	topicARN  string
	namespace string
	userName  string
	region    string
}

func NewService(client EmbedAPI, cfg config.QuickSightConfig, region string) *Service {
	return &Service{
		client:    client,
		accountID: cfg.AccountID,
		topicARN:  cfg.TopicARN,
		namespace: cfg.Namespace,
		userName:  cfg.UserName,
		region:    region,
	}
}

// GenerateEmbedURL requests a short-lived embed URL bound to the configured
// registered user and topic.
func (s *Service) GenerateEmbedURL(ctx context.Context) (*models.EmbedURLResponse, error) {
	if s.accountID == "" || s.topicARN == "" {
		return nil, &ConfigurationError{Message: "QuickSight account ID or topic ARN is not configured"}
	}
	namespace := s.namespace
	if namespace == "" {
		namespace = "default"
	}
	userARN := fmt.Sprintf("arn:aws:quicksight:%s:%s:user/%s/%s", s.region, s.accountID, namespace, s.userName)

	out, err := s.client.GenerateEmbedUrlForRegisteredUser(ctx, &quicksight.GenerateEmbedUrlForRegisteredUserInput{
		AwsAccountId:             aws.String(s.accountID),
		UserArn:                  aws.String(userARN),
		SessionLifetimeInMinutes: aws.Int64(sessionMinutes),
		AllowedDomains:           allowedDomains,
		ExperienceConfiguration: &types.RegisteredUserEmbeddingExperienceConfiguration{
			GenerativeQnA: &types.RegisteredUserGenerativeQnAEmbeddingConfiguration{
				InitialTopicId: aws.String(topicIDFromARN(s.topicARN)),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate embed url: %w", err)
	}

	return &models.EmbedURLResponse{
		EmbedURL: aws.ToString(out.EmbedUrl),
		Status:   int(out.Status),
	}, nil
}

// topicIDFromARN accepts either a full topic ARN or a bare topic ID.
func topicIDFromARN(arn string) string {
	if idx := strings.LastIndex(arn, "/"); idx >= 0 {
		return arn[idx+1:]
	}
	return arn
}
