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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ExpandsEnvAndAppliesDefaults(t *testing.T) {
	t.Setenv("TEST_SHEET_ID", "sheet-123")
	t.Setenv("TEST_OPENAI_KEY", "sk-test")

	path := writeConfig(t, `
sheets:
  sheet_id: ${TEST_SHEET_ID}
openai:
  api_key: ${TEST_OPENAI_KEY}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", cfg.SheetID)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "credentials/gmail_credentials.json", cfg.GmailCredentialsPath)
	assert.Equal(t, "credentials/gmail_token.json", cfg.GmailTokenPath)
	assert.Equal(t, "credentials/service_account.json", cfg.SheetsCredentialsPath)
	assert.Equal(t, "receipts", cfg.StagingDir)
	assert.Equal(t, 60*time.Second, cfg.PollInterval)
}

func TestLoad_ExplicitValuesWin(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "90s")

	path := writeConfig(t, `
gmail:
  credentials: /etc/rtb/gmail.json
  token: /var/lib/rtb/token.json
sheets:
  credentials: /etc/rtb/sa.json
  sheet_id: explicit-sheet
openai:
  api_key: sk-explicit
  model: gpt-4o
ocr:
  language: eng
pipeline:
  staging_dir: /tmp/rtb
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/etc/rtb/gmail.json", cfg.GmailCredentialsPath)
	assert.Equal(t, "explicit-sheet", cfg.SheetID)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "eng", cfg.OCRLanguage)
	assert.Equal(t, "/tmp/rtb", cfg.StagingDir)
	assert.Equal(t, 90*time.Second, cfg.PollInterval)
}

func TestLoad_MissingSheetID(t *testing.T) {
	t.Setenv("GOOGLE_SHEET_ID", "")
	path := writeConfig(t, `
openai:
  api_key: sk-test
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet ID")
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := writeConfig(t, `
sheets:
  sheet_id: sheet-123
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API key")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
