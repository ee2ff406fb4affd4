package backend

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"
)

func (g *gitCLI) HeadState() (hash string, headName string, ok bool, err error) {
	if g == nil || g.path == "" {
		return "", "", false, fmt.Errorf("repository root not set")
	}
	out, err := g.lookup("rev-parse", "-q", "--verify", "HEAD")
	if err != nil {
		return "", "", false, err
	}
	hash = strings.TrimSpace(out)
	if hash == "" {
		return "", "", false, nil
	}
	ref, err := g.lookup("symbolic-ref", "-q", "--short", "HEAD")
	if err != nil {
		return "", "", false, err
	}
	headName = strings.TrimSpace(ref)
	if headName == "" {
		headName = "HEAD"
	}
	return hash, headName, true, nil
}

func (g *gitCLI) Status() ([]StatusEntry, error) {
	if g == nil || g.path == "" {
		return nil, fmt.Errorf("repository root not set")
	}
	bare, err := g.run("rev-parse", "--is-bare-repository")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(bare) == "true" {
		return nil, nil
	}
	out, err := g.run("status", "--porcelain=v2", "--untracked-files=all")
	if err != nil {
		return nil, err
	}
	entries, err := parseStatusPorcelainV2(strings.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("parse git status: %w", err)
	}
	return entries, nil
}

// parseStatusPorcelainV2 converts `git status --porcelain=v2` output into
// entries sorted by path. Ignored files and header lines are dropped.
func parseStatusPorcelainV2(r io.Reader) ([]StatusEntry, error) {
	var entries []StatusEntry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) < 2 {
			continue
		}
		var (
			xy   string
			path string
		)
		switch line[0] {
		case '1':
			parts := strings.SplitN(line, " ", 9)
			if len(parts) < 9 {
				continue
			}
			xy, path = parts[1], parts[8]
		case '2':
			parts := strings.SplitN(line, " ", 10)
			if len(parts) < 10 {
				continue
			}
			xy = parts[1]
			path, _, _ = strings.Cut(parts[9], "\t")
		case 'u':
			parts := strings.SplitN(line, " ", 11)
			if len(parts) < 11 {
				continue
			}
			xy, path = parts[1], parts[10]
		case '?':
			xy, path = "??", line[2:]
		default:
			// '#' headers, '!' ignored.
			continue
		}
		if len(xy) != 2 || path == "" {
			continue
		}
		entries = append(entries, StatusEntry{
			Path:     unquotePath(path),
			Staging:  porcelainCode(xy[0]),
			Worktree: porcelainCode(xy[1]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	slices.SortFunc(entries, func(a, b StatusEntry) int { return strings.Compare(a.Path, b.Path) })
	return entries, nil
}

func porcelainCode(c byte) StatusCode {
	if c == '.' {
		return StatusUnmodified
	}
	return StatusCode(c)
}

// unquotePath undoes the C-style quoting git applies to unusual path names.
func unquotePath(path string) string {
	if len(path) < 2 || path[0] != '"' {
		return path
	}
	if unquoted, err := strconv.Unquote(path); err == nil {
		return unquoted
	}
	return path
}

// ListRefs lists local and remote branches. Symbolic refs such as
// origin/HEAD are reported with the hash they resolve to.
func (g *gitCLI) ListRefs() ([]Ref, error) {
	if g == nil || g.path == "" {
		return nil, nil
	}
	out, err := g.run(
		"for-each-ref",
		"--format=%(objectname) %(refname)",
		"refs/heads",
		"refs/remotes",
	)
	if err != nil {
		return nil, err
	}
	return parseBranchRefs(out)
}

func parseBranchRefs(out string) ([]Ref, error) {
	var refs []Ref
	for _, rawLine := range strings.Split(out, "\n") {
		line := strings.TrimRight(rawLine, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		hash, refName, ok := strings.Cut(line, " ")
		if !ok || hash == "" || refName == "" {
			return nil, fmt.Errorf("unexpected for-each-ref output line: %q", rawLine)
		}
		if short, ok := strings.CutPrefix(refName, "refs/heads/"); ok && short != "" {
			refs = append(refs, Ref{Hash: hash, Kind: RefKindBranch, Name: short})
		} else if short, ok := strings.CutPrefix(refName, "refs/remotes/"); ok && short != "" {
			refs = append(refs, Ref{Hash: hash, Kind: RefKindRemoteBranch, Name: short})
		}
	}
	return refs, nil
}

// Unit-separated fields, NUL-terminated records. %gd carries the entry date
// when combined with --date.
const gitReflogFormat = "%H%x1f%gd%x1f%gn%x1f%ge%x1f%gs%x00"

func (g *gitCLI) ReadReflog(limit int) ([]ReflogEntry, error) {
	_, _, ok, err := g.HeadState()
	if err != nil || !ok {
		return nil, err
	}
	args := []string{
		"--no-pager",
		"log",
		"--walk-reflogs",
		"--no-color",
		"--date=iso-strict",
		"--pretty=tformat:" + gitReflogFormat,
	}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	args = append(args, "HEAD")
	out, err := g.run(args...)
	if err != nil {
		return nil, err
	}
	return parseReflogWalk(out), nil
}

// parseReflogWalk parses records produced with gitReflogFormat. The CLI does
// not expose the previous target, so OldHash stays empty.
func parseReflogWalk(out string) []ReflogEntry {
	var entries []ReflogEntry
	for _, rec := range strings.Split(out, "\x00") {
		rec = strings.TrimLeft(rec, "\r\n")
		if rec == "" {
			continue
		}
		fields := strings.Split(rec, "\x1f")
		if len(fields) != 5 || fields[0] == "" {
			continue
		}
		entries = append(entries, ReflogEntry{
			NewHash: fields[0],
			Actor: Signature{
				Name:  fields[2],
				Email: fields[3],
				When:  reflogSelectorTime(fields[1]),
			},
			Message: strings.TrimSpace(fields[4]),
		})
	}
	return entries
}

// reflogSelectorTime extracts the date from "HEAD@{2024-01-02T03:04:05+00:00}".
func reflogSelectorTime(selector string) time.Time {
	_, rest, ok := strings.Cut(selector, "@{")
	if !ok {
		return time.Time{}
	}
	when, err := time.Parse(time.RFC3339, strings.TrimSuffix(rest, "}"))
	if err != nil {
		return time.Time{}
	}
	return when
}
