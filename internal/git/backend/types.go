package backend

import "time"

type Signature struct {
	Name  string
	Email string
	When  time.Time
}

type Commit struct {
	Hash         string
	ParentHashes []string
	Author       Signature
	Committer    Signature
	Message      string
}

type RefKind uint8

const (
	RefKindBranch RefKind = iota
	RefKindRemoteBranch
)

type Ref struct {
	Hash string
	Kind RefKind
	Name string // short name: main, origin/main
}

// ReflogEntry is one line of a reference log. Entries are returned newest first.
type ReflogEntry struct {
	OldHash string
	NewHash string
	Actor   Signature
	Message string
}

// StatusCode mirrors the single-letter codes used by `git status --short`.
type StatusCode byte

const (
	StatusUnmodified         StatusCode = ' '
	StatusUntracked          StatusCode = '?'
	StatusModified           StatusCode = 'M'
	StatusAdded              StatusCode = 'A'
	StatusDeleted            StatusCode = 'D'
	StatusRenamed            StatusCode = 'R'
	StatusCopied             StatusCode = 'C'
	StatusUpdatedButUnmerged StatusCode = 'U'
)

type StatusEntry struct {
	Path     string
	Staging  StatusCode
	Worktree StatusCode
}
