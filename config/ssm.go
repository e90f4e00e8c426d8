package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterLister is the slice of the SSM API used by LoadSSM.
type ParameterLister interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// NewSSMClient builds an SSM client from the default AWS credential chain.
func NewSSMClient(ctx context.Context, region string) (*ssm.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

// LoadSSM overlays every parameter under prefix onto cfg. The last path
// segment becomes the key, so /buildsy/prod/OPENAI_API_KEY sets
// OPENAI_API_KEY. Values already present in cfg win.
func LoadSSM(ctx context.Context, client ParameterLister, prefix string, cfg map[string]string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return loaded, fmt.Errorf("list ssm parameters under %s: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			key := path.Base(strings.TrimSuffix(aws.ToString(p.Name), "/"))
			if key == "" || key == "." || key == "/" {
				continue
			}
			if existing, ok := cfg[key]; ok && existing != "" {
				log.Debug().Str("key", key).Msg("ssm parameter shadowed by environment")
				continue
			}
			cfg[key] = aws.ToString(p.Value)
			loaded++
		}
	}
	return loaded, nil
}
