package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// RemoteSource returns a flat key/value document, or an empty map when the
// source has nothing to offer.
type RemoteSource interface {
	Name() string
	Fetch(ctx context.Context) (map[string]any, error)
}

// AppConfigSource reads a JSON profile from the AWS AppConfig agent running
// next to the process.
type AppConfigSource struct {
	BaseURL     string
	Application string
	Environment string
	Profile     string
	Attempts    uint64
	Client      *http.Client
}

func NewAppConfigSource(cfg RemoteConfig) *AppConfigSource {
	return &AppConfigSource{
		BaseURL:     cfg.AppConfigBaseURL,
		Application: cfg.AppConfigApplication,
		Environment: cfg.AppConfigEnvironment,
		Profile:     cfg.AppConfigProfile,
		Attempts:    cfg.AppConfigAttempts,
		Client:      &http.Client{Timeout: cfg.AppConfigTimeout},
	}
}

func (s *AppConfigSource) Name() string { return "appconfig" }

func (s *AppConfigSource) URL() string {
	return strings.TrimRight(s.BaseURL, "/") + path.Join(
		"/applications", url.PathEscape(s.Application),
		"environments", url.PathEscape(s.Environment),
		"configurations", url.PathEscape(s.Profile),
	)
}

func (s *AppConfigSource) Fetch(ctx context.Context) (map[string]any, error) {
	var doc map[string]any

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(), nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("building request: %w", err))
		}

		resp, err := s.Client.Do(req)
		if err != nil {
			return fmt.Errorf("requesting appconfig: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading appconfig body: %w", err)
		}

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("appconfig returned %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("appconfig returned %d", resp.StatusCode))
		}

		if len(strings.TrimSpace(string(body))) == 0 {
			doc = map[string]any{}
			return nil
		}
		if err := json.Unmarshal(body, &doc); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding appconfig document: %w", err))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second

	attempts := s.Attempts
	if attempts == 0 {
		attempts = 1
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, attempts-1), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return doc, nil
}

// SSMParametersAPI is the subset of the SSM client the source needs.
type SSMParametersAPI interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// SSMSource reads every parameter under a path. The last path segment
// becomes the key, so /image-pipeline/prod/BUCKET_NAME maps to BUCKET_NAME.
type SSMSource struct {
	client SSMParametersAPI
	path   string
}

func NewSSMSource(client SSMParametersAPI, paramPath string) *SSMSource {
	return &SSMSource{client: client, path: paramPath}
}

func (s *SSMSource) Name() string { return "ssm" }

func (s *SSMSource) Fetch(ctx context.Context) (map[string]any, error) {
	doc := make(map[string]any)

	paginator := ssm.NewGetParametersByPathPaginator(s.client, &ssm.GetParametersByPathInput{
		Path:           aws.String(s.path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing ssm parameters under %s: %w", s.path, err)
		}
		for _, p := range page.Parameters {
			name := aws.ToString(p.Name)
			key := name[strings.LastIndex(name, "/")+1:]
			if key == "" {
				continue
			}
			doc[key] = aws.ToString(p.Value)
		}
	}
	return doc, nil
}

// LoadRemote returns the first non-empty document from sources. Failing
// sources are logged and skipped; remote configuration is optional.
func LoadRemote(ctx context.Context, logger *zap.Logger, sources ...RemoteSource) map[string]any {
	for _, src := range sources {
		if src == nil {
			continue
		}
		doc, err := src.Fetch(ctx)
		if err != nil {
			logger.Warn("remote config unavailable", zap.String("source", src.Name()), zap.Error(err))
			continue
		}
		if len(doc) > 0 {
			logger.Info("loaded remote config", zap.String("source", src.Name()), zap.Int("keys", len(doc)))
			return doc
		}
	}
	return map[string]any{}
}
