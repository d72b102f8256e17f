package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	existingFile := filepath.Join(t.TempDir(), "existing_file")
	require.NoError(t, os.WriteFile(existingFile, []byte("x"), 0644))

	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"정상", Options{Name: "app"}, ""},
		{"Name 누락", Options{}, "애플리케이션 식별자(Name)"},
		{"Dir이 파일과 충돌", Options{Name: "app", Dir: existingFile}, "이미 파일로 존재합니다"},
		{"음수 MaxAge", Options{Name: "app", MaxAge: -1}, "MaxAge"},
		{"음수 MaxSizeMB", Options{Name: "app", MaxSizeMB: -1}, "MaxSizeMB"},
		{"음수 MaxBackups", Options{Name: "app", MaxBackups: -1}, "MaxBackups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProfiles(t *testing.T) {
	prod := NewProductionOptions("listing-bot")
	assert.Equal(t, "listing-bot", prod.Name)
	assert.Equal(t, InfoLevel, prod.Level)
	assert.True(t, prod.EnableCriticalLog)
	assert.False(t, prod.EnableConsoleLog)
	assert.NoError(t, prod.Validate())

	dev := NewDevelopmentOptions("listing-bot")
	assert.Equal(t, TraceLevel, dev.Level)
	assert.True(t, dev.EnableConsoleLog)
	assert.NoError(t, dev.Validate())
}
