package config

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"debug", "json", logrus.DebugLevel, true},
		{"warn", "text", logrus.WarnLevel, false},
		{"loud", "", logrus.InfoLevel, true},
	}
	for _, tt := range tests {
		logger := NewLogger(tt.level, tt.format)
		if logger.GetLevel() != tt.wantLevel {
			t.Errorf("Expected level %s for %q, got %s", tt.wantLevel, tt.level, logger.GetLevel())
		}
		_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
		if isJSON != tt.wantJSON {
			t.Errorf("Expected JSON formatter %v for format %q", tt.wantJSON, tt.format)
		}
	}
}
