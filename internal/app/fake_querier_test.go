package app

import (
	"fmt"
	"time"

	"github.com/thiagokokada/guit-go/internal/git"
)

type fakeQuerier struct {
	head    string
	status  []git.StatusRecord
	commits []git.CommitRecord
	local   []git.BranchRecord
	remote  []git.BranchRecord
	reflog  []git.CommitRecord

	lastCommitLimit int
	lastReflogLimit int
	calls           int
}

func (f *fakeQuerier) HeadName() string {
	f.calls++
	return f.head
}

func (f *fakeQuerier) ListStatus() []git.StatusRecord { return f.status }

func (f *fakeQuerier) ListCommits(limit int) []git.CommitRecord {
	f.lastCommitLimit = limit
	return f.commits
}

func (f *fakeQuerier) ListBranches(kind git.BranchKind) []git.BranchRecord {
	if kind == git.BranchRemote {
		return f.remote
	}
	return f.local
}

func (f *fakeQuerier) ListReflog(limit int) []git.CommitRecord {
	f.lastReflogLimit = limit
	return f.reflog
}

func commitRecords(n int) []git.CommitRecord {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]git.CommitRecord, 0, n)
	for i := range n {
		records = append(records, git.CommitRecord{
			ShortHash: fmt.Sprintf("%07d", i),
			Author:    "author",
			Summary:   fmt.Sprintf("commit %d", i),
			When:      base.Add(-time.Duration(i) * time.Hour),
		})
	}
	return records
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		head: "main",
		status: []git.StatusRecord{
			{Path: "a.txt", Staging: ' ', Worktree: 'M'},
			{Path: "b.txt", Staging: '?', Worktree: '?'},
		},
		commits: commitRecords(5),
		local:   []git.BranchRecord{{Name: "main", IsHead: true}, {Name: "topic"}},
		remote:  []git.BranchRecord{{Name: "origin/main"}},
		reflog:  commitRecords(3),
	}
}
