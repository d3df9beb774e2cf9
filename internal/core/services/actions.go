package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/reposearch/internal/core/domain"
	"github.com/custodia-labs/reposearch/internal/core/ports/driving"
)

var _ driving.ResultActionService = (*ResultActionService)(nil)

var errNilRepository = errors.New("repository is nil")

// ResultActionService opens and copies repository links.
type ResultActionService struct {
	writeClipboard func(string) error
	open           func(string) error
}

// NewResultActionService uses the system clipboard and browser.
func NewResultActionService() *ResultActionService {
	return &ResultActionService{
		writeClipboard: clipboard.WriteAll,
		open:           openURL,
	}
}

func (s *ResultActionService) CopyURL(_ context.Context, repo *domain.Repository) error {
	if repo == nil {
		return errNilRepository
	}
	if err := s.writeClipboard(repo.URL); err != nil {
		return fmt.Errorf("copy url: %w", err)
	}
	return nil
}

// OpenRepository launches the browser on repo.URL. Only http and https
// links are handed to the platform launcher.
func (s *ResultActionService) OpenRepository(_ context.Context, repo *domain.Repository) error {
	if repo == nil {
		return errNilRepository
	}
	u, err := url.Parse(repo.URL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("repository %d has no web url: %w", repo.ID, domain.ErrInvalidInput)
	}
	return s.open(u.String())
}

func openURL(link string) error {
	name, args := browserCommand(runtime.GOOS, link)
	return exec.Command(name, args...).Start()
}

// browserCommand returns the launcher for goos.
func browserCommand(goos, link string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{link}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}
	default:
		return "xdg-open", []string{link}
	}
}
