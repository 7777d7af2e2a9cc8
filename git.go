package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// isGitURL reports whether root names a remote repository rather than a
// local directory.
func isGitURL(root string) bool {
	if strings.HasPrefix(root, "git@") || strings.HasPrefix(root, "ssh://") || strings.HasPrefix(root, "git://") {
		return true
	}
	return (strings.HasPrefix(root, "https://") || strings.HasPrefix(root, "http://")) &&
		strings.HasSuffix(root, ".git")
}

// cloneRepo shallow-clones url into a fresh temporary directory and returns
// it. The caller removes the directory.
func cloneRepo(ctx context.Context, url string, logger *zap.Logger) (string, error) {
	dir, err := os.MkdirTemp("", "promptpack-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	logger.Info("Cloning repository", zap.String("url", url), zap.String("dir", dir))
	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           url,
		Progress:      os.Stderr,
		Depth:         1,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}
	return dir, nil
}
