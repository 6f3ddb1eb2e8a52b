// Copyright (c) 2026 ReceiptToBooks Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads configuration from config.yaml and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the receipt pipeline.
type Config struct {
	// Gmail OAuth client secret and cached user token.
	GmailCredentialsPath string
	GmailTokenPath       string

	// Sheets service account key and target spreadsheet.
	SheetsCredentialsPath string
	SheetID               string

	// OpenAI structured extraction.
	OpenAIAPIKey string
	OpenAIModel  string

	// Tesseract language code; empty uses the engine default.
	OCRLanguage string

	// Attachment staging directory and poll interval.
	StagingDir   string
	PollInterval time.Duration
}

// rawConfig mirrors the YAML structure for unmarshalling.
type rawConfig struct {
	Gmail struct {
		Credentials string `yaml:"credentials"`
		Token       string `yaml:"token"`
	} `yaml:"gmail"`
	Sheets struct {
		Credentials string `yaml:"credentials"`
		SheetID     string `yaml:"sheet_id"`
	} `yaml:"sheets"`
	OpenAI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`
	OCR struct {
		Language string `yaml:"language"`
	} `yaml:"ocr"`
	Pipeline struct {
		StagingDir string `yaml:"staging_dir"`
	} `yaml:"pipeline"`
}

// Load reads configuration from the YAML file at path (with env var
// expansion) and environment variables for non-YAML settings. An empty
// path falls back to CONFIG_PATH, then "config.yaml".
func Load(path string) (*Config, error) {
	if path == "" {
		path = envOrDefault("CONFIG_PATH", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	// Expand ${VAR} references in the YAML
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}

	cfg := &Config{
		GmailCredentialsPath:  firstNonEmpty(raw.Gmail.Credentials, "credentials/gmail_credentials.json"),
		GmailTokenPath:        firstNonEmpty(raw.Gmail.Token, "credentials/gmail_token.json"),
		SheetsCredentialsPath: firstNonEmpty(raw.Sheets.Credentials, "credentials/service_account.json"),
		SheetID:               firstNonEmpty(raw.Sheets.SheetID, os.Getenv("GOOGLE_SHEET_ID")),
		OpenAIAPIKey:          firstNonEmpty(raw.OpenAI.APIKey, os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:           firstNonEmpty(raw.OpenAI.Model, "gpt-4o-mini"),
		OCRLanguage:           raw.OCR.Language,
		StagingDir:            firstNonEmpty(raw.Pipeline.StagingDir, "receipts"),
		PollInterval:          envOrDefaultDuration("POLL_INTERVAL", 60*time.Second),
	}

	if cfg.SheetID == "" {
		return nil, fmt.Errorf("sheet ID is required — set sheets.sheet_id or GOOGLE_SHEET_ID")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required — set openai.api_key or OPENAI_API_KEY")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
