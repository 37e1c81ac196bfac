package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"
)

// Resolve fills cfg.Pipeline from the remote sources and the environment,
// validates it for role and returns the AWS config for the pipeline region.
func Resolve(ctx context.Context, cfg *Config, role Role, logger *zap.Logger) (aws.Config, error) {
	var sources []RemoteSource
	if cfg.Remote.AppConfigEnabled() {
		sources = append(sources, NewAppConfigSource(cfg.Remote))
	}
	if cfg.Remote.SSMEnabled() {
		ssmCfg, err := LoadAWS(ctx, cfg.Remote.SSMRegionOrDefault(), cfg.AWS)
		if err != nil {
			return aws.Config{}, err
		}
		sources = append(sources, NewSSMSource(ssm.NewFromConfig(ssmCfg), cfg.Remote.SSMParamPath))
	}

	pipeline, err := LoadPipeline(LoadRemote(ctx, logger, sources...))
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading pipeline config: %w", err)
	}
	cfg.Pipeline = pipeline

	if err := cfg.Validate(role); err != nil {
		return aws.Config{}, err
	}

	return LoadAWS(ctx, pipeline.Region, cfg.AWS)
}
