package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/thiagokokada/guit-go/internal/app"
	"github.com/thiagokokada/guit-go/internal/config"
	"github.com/thiagokokada/guit-go/internal/git"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeQuerier struct {
	head    string
	status  []git.StatusRecord
	commits []git.CommitRecord
	local   []git.BranchRecord
	remote  []git.BranchRecord
	reflog  []git.CommitRecord
	queries int
}

func (f *fakeQuerier) HeadName() string {
	f.queries++
	return f.head
}

func (f *fakeQuerier) ListStatus() []git.StatusRecord { return f.status }

func (f *fakeQuerier) ListCommits(int) []git.CommitRecord { return f.commits }

func (f *fakeQuerier) ListReflog(int) []git.CommitRecord { return f.reflog }

func (f *fakeQuerier) ListBranches(kind git.BranchKind) []git.BranchRecord {
	if kind == git.BranchRemote {
		return f.remote
	}
	return f.local
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		head:   "main",
		status: []git.StatusRecord{{Path: "README.md", Staging: ' ', Worktree: 'M'}},
		commits: []git.CommitRecord{
			{ShortHash: "aaaaaaa", Author: "Jane Doe", Summary: "Add feature", When: testNow.Add(-2 * time.Hour)},
			{ShortHash: "bbbbbbb", Author: "John Roe", Summary: "Initial commit", When: testNow.Add(-48 * time.Hour)},
		},
		local:  []git.BranchRecord{{Name: "main", ShortHash: "aaaaaaa", IsHead: true}, {Name: "topic", ShortHash: "bbbbbbb"}},
		remote: []git.BranchRecord{{Name: "origin/main", ShortHash: "aaaaaaa"}},
	}
}

func newTestModel(t *testing.T, q *fakeQuerier) Model {
	t.Helper()
	orig := now
	now = func() time.Time { return testNow }
	t.Cleanup(func() { now = orig })

	state := app.Open(q, app.Limits{})
	return NewModel(state, NewStyles(darkPalette, config.Styles{}), 0)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
