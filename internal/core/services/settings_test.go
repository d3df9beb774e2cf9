package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

func TestSettingsService_Get_Defaults(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), svc.Get())
}

func TestSettingsService_Get_FromStore(t *testing.T) {
	store := newMockConfigStore()
	store.data[domain.KeyGitHubBaseURL] = "http://ghe.local/api/v3/"
	store.data[domain.KeyPerPage] = int64(50)
	store.data[domain.KeyRequestsPerMinute] = int64(10)
	store.data[domain.KeyDebounceMillis] = int64(0)
	svc := NewSettingsService(store)

	got := svc.Get()

	assert.Equal(t, "http://ghe.local/api/v3/", got.BaseURL)
	assert.Equal(t, 50, got.PerPage)
	assert.Equal(t, 10, got.RequestsPerMinute)
	assert.Equal(t, time.Duration(0), got.Debounce)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		want    any
		wantErr bool
	}{
		{"per page", domain.KeyPerPage, "50", int64(50), false},
		{"debounce", domain.KeyDebounceMillis, "250", int64(250), false},
		{"base url", domain.KeyGitHubBaseURL, "http://x/", "http://x/", false},
		{"not a number", domain.KeyPerPage, "many", nil, true},
		{"negative", domain.KeyRequestsPerMinute, "-1", nil, true},
		{"unknown key", "search.mode", "fast", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockConfigStore()
			svc := NewSettingsService(store)

			err := svc.Set(tt.key, tt.value)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, store.data[tt.key])
		})
	}
}

func TestSettingsService_Values_MasksToken(t *testing.T) {
	store := newMockConfigStore()
	svc := NewSettingsService(store)
	require.NoError(t, svc.SetToken("ghp_secret1234"))
	require.NoError(t, svc.Set(domain.KeyPerPage, "20"))

	values := svc.Values()

	assert.Equal(t, "****1234", values[domain.KeyGitHubToken])
	assert.Equal(t, "20", values[domain.KeyPerPage])
}

func TestMaskToken_Short(t *testing.T) {
	assert.Equal(t, "****", maskToken("abc"))
}
