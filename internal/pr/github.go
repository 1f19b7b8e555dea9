package pr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v39/github"
	"golang.org/x/oauth2"
)

// maxContentFetchBytes caps how much file content is pulled per file.
// Larger files are scored from their path and size signals only.
const maxContentFetchBytes = 1 << 20

// GitHubLoader fetches the changed files of a pull request.
type GitHubLoader struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubLoader creates a loader authenticated with a token.
func NewGitHubLoader(token string, logger *slog.Logger) *GitHubLoader {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	return &GitHubLoader{
		client: github.NewClient(tc),
		logger: logger,
	}
}

// LoadFiles returns the changed files of a PR with content at the PR head.
// Content fetch failures for individual files are logged and tolerated:
// the file is still listed with empty content so path-based scoring and
// the auto-merge veto still see it.
func (l *GitHubLoader) LoadFiles(ctx context.Context, owner, repo string, number int) ([]ChangedFile, error) {
	pull, _, err := l.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request %s/%s#%d: %w", owner, repo, number, err)
	}
	headSHA := pull.GetHead().GetSHA()

	var commitFiles []*github.CommitFile
	opts := &github.ListOptions{PerPage: 100}
	for {
		page, resp, err := l.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list files for %s/%s#%d: %w", owner, repo, number, err)
		}
		commitFiles = append(commitFiles, page...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	files := make([]ChangedFile, 0, len(commitFiles))
	for _, cf := range commitFiles {
		path := cf.GetFilename()
		file := ChangedFile{
			Path:     path,
			Language: DetectLanguage(path),
		}

		if cf.GetStatus() != "removed" {
			file.Content = l.fetchContent(ctx, owner, repo, path, headSHA)
		}

		files = append(files, file)
	}

	l.logger.Debug("Loaded PR files",
		"owner", owner,
		"repo", repo,
		"number", number,
		"files", len(files),
	)
	return files, nil
}

// fetchContent pulls a file's content at a ref, returning "" on any failure.
func (l *GitHubLoader) fetchContent(ctx context.Context, owner, repo, path, ref string) string {
	fc, _, _, err := l.client.Repositories.GetContents(ctx, owner, repo, path,
		&github.RepositoryContentGetOptions{Ref: ref})
	if err != nil || fc == nil {
		l.logger.Debug("Could not fetch file content", "path", path, "error", err)
		return ""
	}
	if fc.GetSize() > maxContentFetchBytes {
		return ""
	}

	content, err := fc.GetContent()
	if err != nil {
		l.logger.Debug("Could not decode file content", "path", path, "error", err)
		return ""
	}
	if !isText([]byte(content)) {
		return ""
	}
	return content
}
