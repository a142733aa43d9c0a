// Package gittest builds in-memory repositories and serves them to the
// extractor through an in-process transport.
package gittest

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/client"
	"github.com/go-git/go-git/v5/plumbing/transport/server"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

var (
	Alice = object.Signature{Name: "Alice", Email: "alice@example.com"}
	Bob   = object.Signature{Name: "Bob", Email: "bob@example.com"}
)

type Repo struct {
	t        testing.TB
	Repo     *git.Repository
	FS       billy.Filesystem
	Worktree *git.Worktree
	// When is the timestamp of the last commit. Each Commit advances it by
	// one hour.
	When time.Time
}

func NewRepo(t testing.TB) *Repo {
	fs := memfs.New()
	r, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)

	return &Repo{
		t:        t,
		Repo:     r,
		FS:       fs,
		Worktree: wt,
		When:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("", 2*60*60)),
	}
}

// Commit records a change to README on the checked out branch.
func (r *Repo) Commit(msg string, author, committer object.Signature) plumbing.Hash {
	r.When = r.When.Add(time.Hour)
	author.When = r.When
	committer.When = r.When

	require.NoError(r.t, util.WriteFile(r.FS, "README", []byte(msg), 0o644))
	_, err := r.Worktree.Add("README")
	require.NoError(r.t, err)

	h, err := r.Worktree.Commit(msg, &git.CommitOptions{Author: &author, Committer: &committer})
	require.NoError(r.t, err)
	return h
}

// Branch creates name at HEAD and checks it out.
func (r *Repo) Branch(name string) {
	head, err := r.Repo.Head()
	require.NoError(r.t, err)
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	require.NoError(r.t, r.Repo.Storer.SetReference(ref))
	require.NoError(r.t, r.Worktree.Checkout(&git.CheckoutOptions{Branch: ref.Name()}))
}

func (r *Repo) Checkout(name string) {
	require.NoError(r.t, r.Worktree.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(name)}))
}

// Serve exposes repos, keyed by canonical id, through an in-process transport
// and returns the base URL to clone them from.
func Serve(t testing.TB, repos map[string]*Repo) string {
	proto := fmt.Sprintf("fixture%d", rand.Uint32())
	base := fmt.Sprintf("%s://fixtures", proto)

	loader := server.MapLoader{}
	for id, r := range repos {
		ep, err := transport.NewEndpoint(fmt.Sprintf("%s/%s", base, id))
		require.NoError(t, err)
		loader[ep.String()] = r.Repo.Storer
	}

	client.InstallProtocol(proto, server.NewClient(loader))
	t.Cleanup(func() { client.InstallProtocol(proto, nil) })
	return base
}
