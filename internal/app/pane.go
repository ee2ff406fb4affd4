package app

import "github.com/thiagokokada/guit-go/internal/git"

type PaneKind uint8

const (
	PaneStatus PaneKind = iota
	PaneCommits
	PaneBranches
	PaneReflog
)

// Pane identifies one of the dashboard panes. The branch kind is only
// meaningful for PaneBranches.
type Pane struct {
	kind   PaneKind
	branch git.BranchKind
}

func StatusPane() Pane                      { return Pane{kind: PaneStatus} }
func CommitsPane() Pane                     { return Pane{kind: PaneCommits} }
func BranchesPane(kind git.BranchKind) Pane { return Pane{kind: PaneBranches, branch: kind} }
func ReflogPane() Pane                      { return Pane{kind: PaneReflog} }

func (p Pane) Kind() PaneKind {
	return p.kind
}

// BranchKind reports which branches a Branches pane shows.
func (p Pane) BranchKind() (git.BranchKind, bool) {
	if p.kind != PaneBranches {
		return git.BranchLocal, false
	}
	return p.branch, true
}

// Next follows the fixed ring Status, Commits, Branches(Local), Reflog.
// Any Branches pane advances to Reflog.
func (p Pane) Next() Pane {
	switch p.kind {
	case PaneStatus:
		return CommitsPane()
	case PaneCommits:
		return BranchesPane(git.BranchLocal)
	case PaneBranches:
		return ReflogPane()
	default:
		return StatusPane()
	}
}

// DrillIn moves from local to remote branches. Other panes have nothing to
// drill into.
func (p Pane) DrillIn() (Pane, bool) {
	if p.kind == PaneBranches && p.branch == git.BranchLocal {
		return BranchesPane(git.BranchRemote), true
	}
	return p, false
}

// DrillOut is the inverse of DrillIn.
func (p Pane) DrillOut() (Pane, bool) {
	if p.kind == PaneBranches && p.branch == git.BranchRemote {
		return BranchesPane(git.BranchLocal), true
	}
	return p, false
}

func (p Pane) String() string {
	switch p.kind {
	case PaneStatus:
		return "Status"
	case PaneCommits:
		return "Commits"
	case PaneBranches:
		return "Branches (" + p.branch.String() + ")"
	case PaneReflog:
		return "Reflog"
	default:
		return "Unknown"
	}
}
