package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/pkg/config"
	"github.com/just-nibble/git-service/pkg/errcodes"
	"github.com/just-nibble/git-service/pkg/validator"
	"github.com/rs/zerolog"
)

// GitClient extracts the history of a hosted repository.
type GitClient interface {
	// Extract returns one normalized commit for every revision reachable
	// from branch, in walker order (tip first). Nothing is left on disk
	// when it returns, whatever the outcome.
	Extract(ctx context.Context, canonicalID, branch string) ([]domain.Commit, error)
}

type gitClient struct {
	baseURL       string
	workspaceRoot string
	cloneTimeout  time.Duration
	log           zerolog.Logger
}

func NewGitClient(cfg config.GitConfig, log zerolog.Logger) GitClient {
	return &gitClient{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		workspaceRoot: cfg.WorkspaceRoot,
		cloneTimeout:  cfg.CloneTimeout,
		log:           log.With().Str("component", "git").Logger(),
	}
}

// WorkspacePath is the transient clone directory of a canonical id.
func WorkspacePath(root, canonicalID string) string {
	return filepath.Join(root, filepath.FromSlash(canonicalID))
}

func (c *gitClient) Extract(ctx context.Context, canonicalID, branch string) ([]domain.Commit, error) {
	// The id ends up in a filesystem path and a clone URL.
	if !validator.IsRepository(canonicalID) {
		return nil, fmt.Errorf("%w: invalid repository id %q", errcodes.ErrCloneFailed, canonicalID)
	}

	if c.cloneTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cloneTimeout)
		defer cancel()
	}

	dir, err := c.acquireWorkspace(canonicalID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errcodes.ErrCloneFailed, err)
	}
	defer c.releaseWorkspace(dir)

	repo, err := c.clone(ctx, dir, canonicalID)
	if err != nil {
		return nil, err
	}

	head, err := checkoutBranch(repo, branch)
	if err != nil {
		return nil, err
	}

	return walk(ctx, repo, head, canonicalID)
}

// acquireWorkspace removes whatever a previous crashed attempt left at the
// workspace path and returns the path.
func (c *gitClient) acquireWorkspace(canonicalID string) (string, error) {
	dir := WorkspacePath(c.workspaceRoot, canonicalID)
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("failed to clean workspace %s: %w", dir, err)
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create workspace root: %w", err)
	}
	return dir, nil
}

func (c *gitClient) releaseWorkspace(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		c.log.Warn().Err(err).Str("workspace", dir).Msg("failed to remove workspace")
	}
}

func (c *gitClient) clone(ctx context.Context, dir, canonicalID string) (*git.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, contextError(err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, canonicalID)
	start := time.Now()
	c.log.Info().Str("url", url).Str("workspace", dir).Msg("cloning repository")

	repo, err := git.PlainCloneContext(ctx, dir, true, &git.CloneOptions{
		URL:  url,
		Tags: git.NoTags,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, contextError(ctxErr)
		}
		return nil, fmt.Errorf("%w: %s: %v", errcodes.ErrCloneFailed, url, err)
	}

	c.log.Info().Str("url", url).Dur("duration", time.Since(start)).Msg("clone finished")
	return repo, nil
}

// checkoutBranch resolves branch to a local branch reference, creating it
// from the remote-tracking branch when the clone only made the default one,
// and points HEAD at it.
func checkoutBranch(repo *git.Repository, branch string) (*plumbing.Reference, error) {
	local := plumbing.NewBranchReferenceName(branch)
	if branch == "" || local.Validate() != nil {
		return nil, fmt.Errorf("%w: %q", errcodes.ErrBranchNotFound, branch)
	}

	ref, err := repo.Reference(local, true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		remote := plumbing.NewRemoteReferenceName(git.DefaultRemoteName, branch)
		var tracking *plumbing.Reference
		tracking, err = repo.Reference(remote, true)
		if err == nil {
			ref = plumbing.NewHashReference(local, tracking.Hash())
			err = repo.Storer.SetReference(ref)
		}
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, fmt.Errorf("%w: %q", errcodes.ErrBranchNotFound, branch)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %q: %v", errcodes.ErrCloneFailed, branch, err)
	}

	if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, local)); err != nil {
		return nil, fmt.Errorf("%w: setting HEAD to %q: %v", errcodes.ErrCloneFailed, branch, err)
	}
	return ref, nil
}

func walk(ctx context.Context, repo *git.Repository, head *plumbing.Reference, canonicalID string) ([]domain.Commit, error) {
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errcodes.ErrMalformedCommit, err)
	}
	defer iter.Close()

	var commits []domain.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commit, err := normalize(c, canonicalID)
		if err != nil {
			return err
		}
		commits = append(commits, commit)
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, contextError(ctxErr)
		}
		if errors.Is(err, errcodes.ErrMalformedCommit) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errcodes.ErrMalformedCommit, err)
	}

	return commits, nil
}

func normalize(c *object.Commit, canonicalID string) (domain.Commit, error) {
	for _, sig := range []object.Signature{c.Author, c.Committer} {
		if sig.Email == "" || !utf8.ValidString(sig.Email) || !utf8.ValidString(sig.Name) {
			return domain.Commit{}, fmt.Errorf("%w: %s has an invalid identity %q <%q>",
				errcodes.ErrMalformedCommit, c.Hash, sig.Name, sig.Email)
		}
	}

	var tree *string
	if len(c.ParentHashes) > 0 {
		parent := c.ParentHashes[0].String()
		tree = &parent
	}

	return domain.Commit{
		Hash:           c.Hash.String(),
		Tree:           tree,
		Text:           normalizeMessage(c.Message),
		Date:           c.Committer.When,
		AuthorEmail:    c.Author.Email,
		AuthorName:     c.Author.Name,
		CommitterEmail: c.Committer.Email,
		CommitterName:  c.Committer.Name,
		RepositoryURL:  canonicalID,
	}, nil
}

// normalizeMessage replaces invalid UTF-8 with U+FFFD, converts CRLF line
// endings and drops one trailing newline.
func normalizeMessage(msg string) string {
	msg = strings.ToValidUTF8(msg, "\uFFFD")
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	return strings.TrimSuffix(msg, "\n")
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", errcodes.ErrCloneTimeout, err)
	}
	return fmt.Errorf("%w: %v", errcodes.ErrExtractionCancelled, err)
}
