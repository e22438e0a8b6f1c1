package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: HumanFormat, Level: WarnLevel, Output: &buf})

	logger.Debug("too quiet", nil)
	logger.Info("still too quiet", nil)
	logger.Warn("heard", nil)
	logger.Error("also heard", nil)

	out := buf.String()
	if strings.Contains(out, "too quiet") {
		t.Errorf("messages below the level were logged: %s", out)
	}
	if !strings.Contains(out, "heard") || !strings.Contains(out, "also heard") {
		t.Errorf("messages at or above the level missing: %s", out)
	}
}

func TestHumanFormatFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: HumanFormat, Level: InfoLevel, Output: &buf})

	logger.Info("generated part", map[string]interface{}{"teeth": 16})

	out := buf.String()
	if !strings.Contains(out, "[info]") {
		t.Errorf("level marker missing: %s", out)
	}
	if !strings.Contains(out, "teeth=16") {
		t.Errorf("fields missing: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: JSONFormat, Level: InfoLevel, Output: &buf})

	logger.Info("generated part", map[string]interface{}{"teeth": 16})

	var entry struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
	}
	if entry.Level != "info" || entry.Message != "generated part" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Fields["teeth"] != float64(16) {
		t.Errorf("fields = %v", entry.Fields)
	}
}
