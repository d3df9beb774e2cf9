package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

func TestResultActionService_CopyURL(t *testing.T) {
	var copied string
	svc := &ResultActionService{writeClipboard: func(s string) error {
		copied = s
		return nil
	}}

	r := repo(1, "a/a")
	require.NoError(t, svc.CopyURL(context.Background(), &r))
	assert.Equal(t, "https://github.com/a/a", copied)

	assert.Error(t, svc.CopyURL(context.Background(), nil))

	svc.writeClipboard = func(string) error { return errors.New("no clipboard") }
	err := svc.CopyURL(context.Background(), &r)
	assert.ErrorContains(t, err, "no clipboard")
}

func TestResultActionService_OpenRepository(t *testing.T) {
	var opened string
	svc := &ResultActionService{open: func(url string) error {
		opened = url
		return nil
	}}

	r := repo(1, "a/a")
	require.NoError(t, svc.OpenRepository(context.Background(), &r))
	assert.Equal(t, "https://github.com/a/a", opened)

	for _, bad := range []string{"", "file:///etc/passwd", "-flag", "https://"} {
		err := svc.OpenRepository(context.Background(), &domain.Repository{ID: 2, URL: bad})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}

	assert.Error(t, svc.OpenRepository(context.Background(), nil))
}

func TestNewResultActionService(t *testing.T) {
	svc := NewResultActionService()

	assert.NotNil(t, svc.writeClipboard)
	assert.NotNil(t, svc.open)
}

func TestBrowserCommand(t *testing.T) {
	const link = "https://github.com/a/a"

	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"darwin", "open", []string{link}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", link}},
		{"linux", "xdg-open", []string{link}},
		{"freebsd", "xdg-open", []string{link}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := browserCommand(tt.goos, link)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}
