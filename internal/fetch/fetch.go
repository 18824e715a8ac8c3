// Package fetch materializes a remote git content source into a local working
// copy. Builds configured with a git source URL run through here before the
// scan; local content roots bypass it entirely.
package fetch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	ggit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"git.home.luguber.info/inful/helpbundler/internal/errors"
	"git.home.luguber.info/inful/helpbundler/internal/logfields"
	"git.home.luguber.info/inful/helpbundler/internal/metrics"
	"git.home.luguber.info/inful/helpbundler/internal/retry"
)

// Source describes a remote git content source.
type Source struct {
	URL      string
	Ref      string // branch name; empty means the remote default
	Subdir   string // content root inside the repository, optional
	Username string
	Token    string
}

// Result reports the outcome of one fetch.
type Result struct {
	// ContentRoot is the directory holding the content, with Subdir applied.
	ContentRoot string
	// Head is the commit the working copy ends up at.
	Head string
	// Updated reports whether the working copy changed since the last fetch.
	Updated bool
}

// Fetcher clones or updates git sources under a workspace directory.
type Fetcher struct {
	workspace string
	recorder  metrics.Recorder
	policy    retry.Policy
}

// NewFetcher creates a Fetcher rooted at workspace.
func NewFetcher(workspace string) *Fetcher {
	return &Fetcher{workspace: workspace, recorder: metrics.NoopRecorder{}, policy: retry.DefaultPolicy()}
}

// WithRetryPolicy overrides the transient-failure retry policy.
func (f *Fetcher) WithRetryPolicy(p retry.Policy) *Fetcher {
	f.policy = p
	return f
}

// WithRecorder attaches a metrics recorder.
func (f *Fetcher) WithRecorder(r metrics.Recorder) *Fetcher {
	f.recorder = r
	return f
}

// Fetch ensures the source is present and current under the workspace. An
// existing clone is pulled; otherwise a fresh clone is made.
func (f *Fetcher) Fetch(ctx context.Context, src Source) (Result, error) {
	start := time.Now()
	res, err := f.fetch(ctx, src)
	f.recorder.ObserveFetchDuration(src.URL, time.Since(start), err == nil)
	return res, err
}

func (f *Fetcher) fetch(ctx context.Context, src Source) (Result, error) {
	repoPath := filepath.Join(f.workspace, repoDirName(src.URL))

	var res Result
	err := retry.Do(ctx, f.policy, func() error {
		var attemptErr error
		if _, statErr := os.Stat(filepath.Join(repoPath, ".git")); statErr == nil {
			res, attemptErr = f.update(ctx, repoPath, src)
		} else {
			res, attemptErr = f.clone(ctx, repoPath, src)
		}
		return attemptErr
	})
	if err != nil {
		return Result{}, err
	}

	res.ContentRoot = repoPath
	if src.Subdir != "" {
		res.ContentRoot = filepath.Join(repoPath, filepath.FromSlash(src.Subdir))
		if _, statErr := os.Stat(res.ContentRoot); statErr != nil {
			return Result{}, errors.NewError(errors.CategoryGit, "content subdirectory not found in source").
				WithContext("url", src.URL).WithContext("subdir", src.Subdir).Build()
		}
	}
	slog.Info("Fetched content source",
		slog.String("url", src.URL), logfields.Path(res.ContentRoot),
		slog.String("head", res.Head), slog.Bool("updated", res.Updated))
	return res, nil
}

func (f *Fetcher) clone(ctx context.Context, repoPath string, src Source) (Result, error) {
	opts := &ggit.CloneOptions{URL: src.URL}
	if src.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Ref)
		opts.SingleBranch = true
	}
	if auth := basicAuth(src); auth != nil {
		opts.Auth = auth
	}

	repo, err := ggit.PlainCloneContext(ctx, repoPath, false, opts)
	if err != nil {
		// A failed clone must not leave a partial directory behind, or the
		// next attempt would try to update it.
		_ = os.RemoveAll(repoPath)
		return Result{}, errors.WrapError(err, errors.CategoryGit, "failed to clone content source").
			WithContext("url", src.URL).Build()
	}
	head, err := headCommit(repo)
	if err != nil {
		return Result{}, err
	}
	return Result{Head: head, Updated: true}, nil
}

func (f *Fetcher) update(ctx context.Context, repoPath string, src Source) (Result, error) {
	repo, err := ggit.PlainOpen(repoPath)
	if err != nil {
		return Result{}, errors.WrapError(err, errors.CategoryGit, "failed to open existing clone").
			WithContext("path", repoPath).Build()
	}
	preHead, err := headCommit(repo)
	if err != nil {
		return Result{}, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return Result{}, errors.WrapError(err, errors.CategoryGit, "failed to open worktree").
			WithContext("path", repoPath).Build()
	}
	opts := &ggit.PullOptions{RemoteName: "origin"}
	if src.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Ref)
		opts.SingleBranch = true
	}
	if auth := basicAuth(src); auth != nil {
		opts.Auth = auth
	}
	if err := worktree.PullContext(ctx, opts); err != nil && err != ggit.NoErrAlreadyUpToDate {
		return Result{}, errors.WrapError(err, errors.CategoryGit, "failed to update content source").
			WithContext("url", src.URL).Build()
	}

	postHead, err := headCommit(repo)
	if err != nil {
		return Result{}, err
	}
	return Result{Head: postHead, Updated: preHead != postHead}, nil
}

func headCommit(repo *ggit.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryGit, "failed to resolve HEAD").Build()
	}
	return head.Hash().String(), nil
}

func basicAuth(src Source) *http.BasicAuth {
	if src.Token == "" {
		return nil
	}
	username := src.Username
	if username == "" {
		// Token-only auth; most forges accept any non-empty username.
		username = "token"
	}
	return &http.BasicAuth{Username: username, Password: src.Token}
}

// repoDirName derives a stable directory name for a source URL.
func repoDirName(url string) string {
	name := strings.TrimSuffix(url, ".git")
	if idx := strings.LastIndexAny(name, "/:"); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" {
		name = "content"
	}
	return name
}
