// Package app holds the navigation state of the dashboard: which pane is
// active, the cursor of every pane and the data each pane lists.
package app

import (
	"log/slog"
	"slices"

	"github.com/thiagokokada/guit-go/internal/git"
	"github.com/thiagokokada/guit-go/internal/selection"
)

// Querier is the read-only repository handle the state is built from.
// *git.Service implements it.
type Querier interface {
	HeadName() string
	ListStatus() []git.StatusRecord
	ListCommits(limit int) []git.CommitRecord
	ListBranches(kind git.BranchKind) []git.BranchRecord
	ListReflog(limit int) []git.CommitRecord
}

// Limits bounds the commit and reflog queries. Zero values select the git
// package defaults.
type Limits struct {
	Commits int
	Reflog  int
}

// Snapshot is the result of one round of repository queries.
type Snapshot struct {
	Head           string
	Status         []git.StatusRecord
	Commits        []git.CommitRecord
	LocalBranches  []git.BranchRecord
	RemoteBranches []git.BranchRecord
	Reflog         []git.CommitRecord
}

// View is a read-only copy of a pane list for rendering.
type View[T any] struct {
	Items     []T
	Cursor    int
	HasCursor bool
}

type State struct {
	repo   Querier
	limits Limits

	status   *selection.List[git.StatusRecord]
	commits  *selection.List[git.CommitRecord]
	local    *selection.List[git.BranchRecord]
	remote   *selection.List[git.BranchRecord]
	reflog   *selection.List[git.CommitRecord]
	active   Pane
	head     string
	notice   string
	quitting bool
}

// Open queries every pane once and starts on the Status pane with no cursor
// set in any list.
func Open(repo Querier, limits Limits) *State {
	s := &State{
		repo:   repo,
		limits: limits,
		active: StatusPane(),
	}
	snap := s.Query()
	s.head = snap.Head
	s.status = selection.New(snap.Status)
	s.commits = selection.New(snap.Commits)
	s.local = selection.New(snap.LocalBranches)
	s.remote = selection.New(snap.RemoteBranches)
	s.reflog = selection.New(snap.Reflog)
	return s
}

// Query runs the repository queries. It only reads the repository handle and
// the limits, so it may run outside the goroutine that owns the State.
func (s *State) Query() Snapshot {
	snap := Snapshot{
		Head:           s.repo.HeadName(),
		Status:         s.repo.ListStatus(),
		Commits:        s.repo.ListCommits(s.limits.Commits),
		LocalBranches:  s.repo.ListBranches(git.BranchLocal),
		RemoteBranches: s.repo.ListBranches(git.BranchRemote),
		Reflog:         s.repo.ListReflog(s.limits.Reflog),
	}
	slog.Debug("queried repository",
		slog.String("head", snap.Head),
		slog.Int("status", len(snap.Status)),
		slog.Int("commits", len(snap.Commits)),
		slog.Int("local_branches", len(snap.LocalBranches)),
		slog.Int("remote_branches", len(snap.RemoteBranches)),
		slog.Int("reflog", len(snap.Reflog)),
	)
	return snap
}

// Apply replaces every list with the snapshot contents, keeping each cursor
// on the same item when it is still present.
func (s *State) Apply(snap Snapshot) {
	s.head = snap.Head
	s.status.Replace(snap.Status, sameStatus)
	s.commits.Replace(snap.Commits, sameCommit)
	s.local.Replace(snap.LocalBranches, sameBranch)
	s.remote.Replace(snap.RemoteBranches, sameBranch)
	s.reflog.Replace(snap.Reflog, sameReflogEntry)
}

func sameStatus(a, b git.StatusRecord) bool { return a.Path == b.Path }
func sameCommit(a, b git.CommitRecord) bool { return a.ShortHash == b.ShortHash }
func sameBranch(a, b git.BranchRecord) bool { return a.Name == b.Name }

func sameReflogEntry(a, b git.CommitRecord) bool {
	return a.ShortHash == b.ShortHash && a.Summary == b.Summary && a.When.Equal(b.When)
}

type mover interface {
	Next()
	Previous()
}

func (s *State) MoveSelectionUp() {
	s.notice = ""
	s.moveActive(false)
}

func (s *State) MoveSelectionDown() {
	s.notice = ""
	s.moveActive(true)
}

func (s *State) moveActive(forward bool) {
	step := func(l mover) {
		if forward {
			l.Next()
		} else {
			l.Previous()
		}
	}
	switch s.active.Kind() {
	case PaneStatus:
		step(s.status)
	case PaneCommits:
		step(s.commits)
	case PaneBranches:
		step(s.branchList(s.active.branch))
	case PaneReflog:
		step(s.reflog)
	}
}

// AdvancePane moves to the next pane of the ring. Cursors are left as they are.
func (s *State) AdvancePane() {
	s.notice = ""
	s.active = s.active.Next()
}

// MoveRight drills from local into remote branches.
func (s *State) MoveRight() {
	next, ok := s.active.DrillIn()
	if !ok {
		s.notice = "right: nothing to open in " + s.active.String()
		return
	}
	s.notice = ""
	s.active = next
}

// MoveLeft returns from remote to local branches.
func (s *State) MoveLeft() {
	next, ok := s.active.DrillOut()
	if !ok {
		s.notice = "left: nothing to go back to from " + s.active.String()
		return
	}
	s.notice = ""
	s.active = next
}

// RequestQuit marks the session as finished. It cannot be undone.
func (s *State) RequestQuit() {
	s.quitting = true
}

// HandleCharacter handles a character key that has no dedicated binding.
func (s *State) HandleCharacter(r rune) {
	if r == 'q' {
		s.RequestQuit()
	}
}

// OnTick is called on every tick of the event loop.
func (s *State) OnTick() {}

func (s *State) Active() Pane     { return s.active }
func (s *State) ShouldQuit() bool { return s.quitting }
func (s *State) Head() string     { return s.head }
func (s *State) Notice() string   { return s.notice }

func (s *State) StatusView() View[git.StatusRecord]  { return viewOf(s.status) }
func (s *State) CommitsView() View[git.CommitRecord] { return viewOf(s.commits) }
func (s *State) ReflogView() View[git.CommitRecord]  { return viewOf(s.reflog) }

func (s *State) BranchesView(kind git.BranchKind) View[git.BranchRecord] {
	return viewOf(s.branchList(kind))
}

func (s *State) branchList(kind git.BranchKind) *selection.List[git.BranchRecord] {
	if kind == git.BranchRemote {
		return s.remote
	}
	return s.local
}

func viewOf[T any](l *selection.List[T]) View[T] {
	cursor, ok := l.Selected()
	return View[T]{Items: slices.Clone(l.View()), Cursor: cursor, HasCursor: ok}
}
