package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "OPENAI_BASE_URL", "OPENAI_MODEL", "DIGEST_CHANNEL", "DIGEST_POST_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.OpenAIBaseURL != "https://api.openai.com/v1" {
		t.Errorf("Unexpected default base URL: %s", cfg.OpenAIBaseURL)
	}
	if cfg.OpenAIModel != "gpt-4" {
		t.Errorf("Unexpected default model: %s", cfg.OpenAIModel)
	}
	if cfg.DigestChannel != "general" {
		t.Errorf("Unexpected default digest channel: %s", cfg.DigestChannel)
	}
	if !cfg.DigestPostEnabled {
		t.Error("Digest posting should default to enabled")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("DIGEST_POST_ENABLED", "false")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Expected port override, got %s", cfg.Port)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("Expected model override, got %s", cfg.OpenAIModel)
	}
	if cfg.DigestPostEnabled {
		t.Error("Expected digest posting disabled")
	}
}

func TestValidate_RequiredVars(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"all present", Config{SlackBotToken: "xoxb-1", SlackSigningSecret: "s", OpenAIAPIKey: "sk-1"}, true},
		{"missing bot token", Config{SlackSigningSecret: "s", OpenAIAPIKey: "sk-1"}, false},
		{"missing signing secret", Config{SlackBotToken: "xoxb-1", OpenAIAPIKey: "sk-1"}, false},
		{"missing openai key", Config{SlackBotToken: "xoxb-1", SlackSigningSecret: "s"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Expected valid config, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
