package backend

import (
	"fmt"
	"os/exec"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// git 2.23 is the oldest release whose `status --porcelain=v2` output and
// reflog date selectors behave the way the CLI backend parses them.
var minGitVersion = gitVersion{2, 23, 0}

// gitVersion holds major, minor and patch.
type gitVersion [3]int

func (v gitVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

func (v gitVersion) atLeast(floor gitVersion) bool {
	return slices.Compare(v[:], floor[:]) >= 0
}

func MinGitVersion() string {
	return minGitVersion.String()
}

// Matches "2.44.0" in "git version 2.44.0", "2.39.3 (Apple Git-146)" or
// "2.39.3.windows.1".
var gitVersionRe = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

func parseGitVersion(out string) (gitVersion, bool) {
	s := strings.TrimSpace(out)
	s = strings.TrimSpace(strings.TrimPrefix(s, "git version"))
	m := gitVersionRe.FindStringSubmatch(s)
	if m == nil {
		return gitVersion{}, false
	}
	var v gitVersion
	for i, part := range m[1:] {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return gitVersion{}, false
		}
		v[i] = n
	}
	return v, true
}

// checkGitVersion validates `git --version` output against minGitVersion.
func checkGitVersion(out string) error {
	got, ok := parseGitVersion(out)
	if !ok {
		return fmt.Errorf("unable to parse git version output: %q", strings.TrimSpace(out))
	}
	if !got.atLeast(minGitVersion) {
		return fmt.Errorf("git %s is too old; guit requires git >= %s", got, minGitVersion)
	}
	return nil
}

// versionProbe runs `git --version` once and remembers the outcome.
type versionProbe struct {
	run func() (string, error)

	once sync.Once
	out  string
	err  error
}

func (p *versionProbe) result() (string, error) {
	p.once.Do(func() {
		out, err := p.run()
		p.out = strings.TrimSpace(out)
		if err != nil {
			if p.out != "" {
				p.err = fmt.Errorf("git --version: %v: %s", err, p.out)
			} else {
				p.err = fmt.Errorf("git --version: %w", err)
			}
			return
		}
		p.err = checkGitVersion(p.out)
	})
	return p.out, p.err
}

var gitProbe = &versionProbe{
	run: func() (string, error) {
		out, err := exec.Command("git", "--version").CombinedOutput()
		return string(out), err
	},
}

// GitVersion returns the output of `git --version`. The error is non-nil when
// git is missing, unparsable or older than MinGitVersion.
func GitVersion() (string, error) {
	return gitProbe.result()
}

func ensureMinGitVersion() error {
	_, err := gitProbe.result()
	return err
}
