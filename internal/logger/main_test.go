package logger_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/logger"
)

func TestInitValidation(t *testing.T) {
	testCases := []struct {
		name          string
		cfg           logger.Log
		expectedError error
	}{
		{
			name: "unknown log level",
			cfg:  logger.Log{LogLevel: "loud", ServiceName: "test", AppName: "test"},
		},
		{
			name:          "missing service name",
			cfg:           logger.Log{LogLevel: "info", AppName: "test"},
			expectedError: logger.ErrServiceNameIsEmpty,
		},
		{
			name:          "missing app name",
			cfg:           logger.Log{LogLevel: "info", ServiceName: "test"},
			expectedError: logger.ErrAppNameIsEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := logger.Init(tc.cfg)
			require.Error(t, err)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
			}
		})
	}
}

func TestInitOutput(t *testing.T) {
	testCases := []struct {
		name         string
		cfg          logger.Log
		expectOutput bool
		expectJSON   bool
	}{
		{
			name:         "no output enabled",
			cfg:          logger.Log{LogLevel: "info", ServiceName: "test", AppName: "test"},
			expectOutput: false,
		},
		{
			name: "console json lines",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			expectOutput: true,
			expectJSON:   true,
		},
		{
			name: "console pretty writer",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			expectOutput: true,
		},
		{
			name: "trace level with caller reporting",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "test",
				AppName:      "test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true},
			},
			expectOutput: true,
			expectJSON:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureLogOutput(t, tc.cfg)

			if !tc.expectOutput {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			if tc.expectJSON {
				for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
					var entry map[string]any
					require.NoError(t, json.Unmarshal([]byte(line), &entry), "line %q", line)
					assert.Contains(t, entry, "level")
				}
			}
		})
	}
}

// captureLogOutput initializes the logger with the given config, emits one
// entry per level group and returns everything written to stdout/stderr.
func captureLogOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	defer func() {
		os.Stdout = stdout
		os.Stderr = stderr
	}()

	require.NoError(t, logger.Init(cfg))

	log.Info().Msg("info entry")
	log.Warn().Msg("warn entry")
	log.Error().Msg("error entry")
	log.Trace().Msg("trace entry")

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	require.NoError(t, w.Close())

	return <-outC
}
