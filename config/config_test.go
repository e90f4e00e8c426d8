package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":        "9090",
		"BAD_INT":     "nine",
		"AUTO":        "true",
		"EMPTY":       "",
		"ORIGINS":     "http://a.test, ,http://b.test",
		"LLM_TIMEOUT": "5",
	}

	if got := GetString(c, "PORT", "8080"); got != "9090" {
		t.Errorf("GetString = %q", got)
	}
	if got := GetString(c, "EMPTY", "fallback"); got != "fallback" {
		t.Errorf("empty value should fall back, got %q", got)
	}
	if got := GetInt(c, "BAD_INT", 7); got != 7 {
		t.Errorf("GetInt on garbage = %d", got)
	}
	if !GetBool(c, "AUTO", false) {
		t.Error("GetBool(AUTO) = false")
	}
	if got := GetSeconds(c, "LLM_TIMEOUT", 60); got != 5*time.Second {
		t.Errorf("GetSeconds = %v", got)
	}
	origins := GetList(c, "ORIGINS")
	if len(origins) != 2 || origins[1] != "http://b.test" {
		t.Errorf("GetList = %v", origins)
	}
	if GetString(nil, "X", "d") != "d" {
		t.Error("nil config should return default")
	}
}

type fakeLister struct {
	pages [][]types.Parameter
	calls int
}

func (f *fakeLister) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestLoadSSM(t *testing.T) {
	lister := &fakeLister{pages: [][]types.Parameter{
		{{Name: aws.String("/buildsy/prod/OPENAI_API_KEY"), Value: aws.String("sk-ssm")}},
		{{Name: aws.String("/buildsy/prod/PORT"), Value: aws.String("1234")}},
	}}
	cfg := map[string]string{"PORT": "8080"}

	n, err := LoadSSM(context.Background(), lister, "/buildsy/prod", cfg)
	if err != nil {
		t.Fatalf("LoadSSM: %v", err)
	}
	if n != 1 {
		t.Errorf("loaded %d parameters, want 1", n)
	}
	if cfg["OPENAI_API_KEY"] != "sk-ssm" {
		t.Errorf("OPENAI_API_KEY = %q", cfg["OPENAI_API_KEY"])
	}
	if cfg["PORT"] != "8080" {
		t.Errorf("environment value should win, PORT = %q", cfg["PORT"])
	}
}
