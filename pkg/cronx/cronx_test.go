package cronx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		wantErr string
	}{
		// 정상
		{name: "@every 1h", spec: "@every 1h"},
		{name: "@hourly", spec: "@hourly"},
		{name: "6필드 정각", spec: "0 0 * * * *"},
		{name: "앞뒤 공백", spec: "  @every 30m  "},

		// 오류
		{name: "빈 문자열", spec: "   ", wantErr: "비어 있습니다"},
		{name: "5필드", spec: "0 * * * *", wantErr: "잘못된 Cron 표현식"},
		{name: "잘못된 duration", spec: "@every soon", wantErr: "잘못된 Cron 표현식"},
		{name: "범위 초과", spec: "0 61 * * * *", wantErr: "잘못된 Cron 표현식"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.spec)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStandardParser_Every(t *testing.T) {
	schedule, err := StandardParser().Parse("@every 1h")
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, base.Add(time.Hour), schedule.Next(base))
}

func TestStandardParser_Seconds(t *testing.T) {
	schedule, err := StandardParser().Parse("30 0 * * * *")
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, base.Add(30*time.Second), schedule.Next(base))
}
