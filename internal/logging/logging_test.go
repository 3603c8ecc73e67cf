package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetup_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Info("installing puppet", "platform", "ubuntu")

	output := buf.String()
	if !strings.Contains(output, "installing puppet") {
		t.Errorf("Expected 'installing puppet' in output, got: %s", output)
	}
	if !strings.Contains(output, "platform=ubuntu") {
		t.Errorf("Expected 'platform=ubuntu' in output, got: %s", output)
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Info("test message", "key", "value")

	output := buf.String()
	// JSON output should contain braces
	if !strings.Contains(output, "{") {
		t.Errorf("Expected JSON output, got: %s", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
}

func TestSetup_VerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	Debug("debug message")

	output := buf.String()
	if !strings.Contains(output, "debug message") {
		t.Errorf("Debug message should appear in verbose mode, got: %s", output)
	}
}

func TestSetup_NonVerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Debug("debug message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Errorf("Debug message should NOT appear in non-verbose mode, got: %s", output)
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func(msg string, args ...any)
		msg  string
	}{
		{"debug", Debug, "staging manifests"},
		{"info", Info, "Finished Preparing files for transfer"},
		{"warn", Warn, "manifest not found"},
		{"error", Error, "resolution failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(true, false, &buf)

			tt.log(tt.msg, "key", "value")

			if !strings.Contains(buf.String(), tt.msg) {
				t.Errorf("Expected %q in output, got: %s", tt.msg, buf.String())
			}
		})
	}
}

func TestSession(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Session(nil, "abc", "default-ubuntu").Info("installing puppet")

	output := buf.String()
	if !strings.Contains(output, "session=abc") || !strings.Contains(output, "instance=default-ubuntu") {
		t.Errorf("Expected session attributes in output, got: %s", output)
	}
}

func TestSession_CustomBase(t *testing.T) {
	var global, custom bytes.Buffer
	Setup(false, false, &global)
	base := slog.New(slog.NewTextHandler(&custom, nil)).With("run", 7)

	Session(base, "abc", "default").Info("staged")

	if global.Len() != 0 {
		t.Errorf("global logger should not be used, got: %s", global.String())
	}
	if !strings.Contains(custom.String(), "run=7 session=abc instance=default") {
		t.Errorf("Expected base and session attributes, got: %s", custom.String())
	}
}

func TestSetup_LevelFollowsLastCall(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)
	logger := Logger
	Setup(false, false, &buf)

	// Loggers built before the last Setup share its level.
	logger.Debug("stale debug")
	if strings.Contains(buf.String(), "stale debug") {
		t.Errorf("debug record kept after Setup(false, ...): %s", buf.String())
	}
}

func TestUserOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	origOut, origErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	defer func() { Stdout, Stderr = origOut, origErr }()

	UserInfo("staging %s", "default")
	UserSuccess("staged %d files", 3)
	UserWarning("careful")
	UserError("failed: %v", "boom")

	if !strings.Contains(out.String(), "staging default") {
		t.Errorf("stdout missing info line: %q", out.String())
	}
	if !strings.Contains(out.String(), "staged 3 files") {
		t.Errorf("stdout missing success line: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "careful") || !strings.Contains(errOut.String(), "failed: boom") {
		t.Errorf("stderr missing warning/error lines: %q", errOut.String())
	}
	if strings.Contains(out.String(), "careful") {
		t.Error("warnings should not go to stdout")
	}
}

func TestSetup_NilWriter(t *testing.T) {
	// Should not panic with nil writer
	Setup(false, false, nil)

	// Logger should still work (writes to stderr)
	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}
