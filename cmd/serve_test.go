package cmd

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestServeCommand(t *testing.T) {
	useTestEnv(t)

	tests := []struct {
		name           string
		args           []string
		timeout        time.Duration
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "serve command with custom port",
			args:           []string{"serve", "--host", "127.0.0.1", "--port", "18765"},
			timeout:        50 * time.Millisecond,
			wantErr:        false,
			expectedOutput: "Server gracefully stopped",
		},
		{
			name:           "serve command with invalid port",
			args:           []string{"serve", "--port", "invalid"},
			wantErr:        true,
			expectedOutput: "",
		},
		// cobra keeps --help set on the command, so this runs last
		{
			name:           "serve command with help",
			args:           []string{"serve", "--help"},
			wantErr:        false,
			expectedOutput: "Start the clipset API server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A short deadline stops the server right after it starts
			ctx := context.Background()
			if tt.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, tt.timeout)
				defer cancel()
			}

			output, err := execute(t, ctx, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.expectedOutput != "" && !strings.Contains(output, tt.expectedOutput) {
				t.Errorf("Expected output to contain %q, got %q", tt.expectedOutput, output)
			}
		})
	}
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCmd()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	if err != nil {
		t.Fatalf("Failed to find serve command: %v", err)
	}

	for _, name := range []string{"port", "host"} {
		if serveCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected %s flag to be registered", name)
		}
	}
}
