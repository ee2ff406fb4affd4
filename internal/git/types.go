package git

import (
	"strings"
	"time"
)

const (
	DefaultCommitLimit = 20
	DefaultReflogLimit = 100

	shortHashLen = 7
)

// BranchKind selects local or remote-tracking branches.
type BranchKind uint8

const (
	BranchLocal BranchKind = iota
	BranchRemote
)

func (k BranchKind) String() string {
	if k == BranchRemote {
		return "Remote"
	}
	return "Local"
}

// CommitRecord is the display projection of a commit or of a reflog entry.
type CommitRecord struct {
	ShortHash string
	Author    string
	Summary   string
	When      time.Time
}

type BranchRecord struct {
	Name      string
	ShortHash string
	IsHead    bool
}

// StatusRecord uses the two-column codes of `git status --short`.
type StatusRecord struct {
	Path     string
	Staging  byte
	Worktree byte
}

// Code renders the two status columns, e.g. " M" or "??".
func (r StatusRecord) Code() string {
	return string([]byte{r.Staging, r.Worktree})
}

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}

func summaryLine(message string) string {
	message = strings.TrimLeft(message, "\n")
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}
