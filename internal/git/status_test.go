package git

import (
	"errors"
	"slices"
	"testing"

	gitbackend "github.com/thiagokokada/guit-go/internal/git/backend"
)

func TestListStatus_NoBackend(t *testing.T) {
	t.Parallel()

	if got := NewWithBackend(nil).ListStatus(); len(got) != 0 {
		t.Fatalf("expected empty status, got %+v", got)
	}
}

func TestListStatus_DelegatesToBackend(t *testing.T) {
	t.Parallel()

	svc := NewWithBackend(&fakeBackend{
		repoPath: "repo",
		statusFunc: func() ([]gitbackend.StatusEntry, error) {
			return []gitbackend.StatusEntry{
				{Path: "a.txt", Staging: gitbackend.StatusModified, Worktree: gitbackend.StatusUnmodified},
				{Path: "b.txt", Staging: gitbackend.StatusUntracked, Worktree: gitbackend.StatusUntracked},
			}, nil
		},
	})
	got := svc.ListStatus()
	want := []StatusRecord{
		{Path: "a.txt", Staging: 'M', Worktree: ' '},
		{Path: "b.txt", Staging: '?', Worktree: '?'},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("ListStatus() = %+v, want %+v", got, want)
	}
	if got[0].Code() != "M " || got[1].Code() != "??" {
		t.Fatalf("unexpected codes: %q %q", got[0].Code(), got[1].Code())
	}
}

func TestListStatus_ErrorYieldsEmpty(t *testing.T) {
	t.Parallel()

	svc := NewWithBackend(&fakeBackend{
		repoPath: "repo",
		statusFunc: func() ([]gitbackend.StatusEntry, error) {
			return nil, errors.New("boom")
		},
	})
	if got := svc.ListStatus(); len(got) != 0 {
		t.Fatalf("expected empty status, got %+v", got)
	}
}
