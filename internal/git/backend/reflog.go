package backend

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"
)

// parseReflog reads a reflog file as stored under .git/logs (oldest entry
// first) and returns the newest limit entries, newest first. Malformed lines
// are skipped.
func parseReflog(r io.Reader, limit int) ([]ReflogEntry, error) {
	var entries []ReflogEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := parseReflogLine(line)
		if err != nil {
			slog.Debug("skipping reflog line", slog.Any("error", err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reflog: %w", err)
	}
	slices.Reverse(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// parseReflogLine parses "<old> <new> Name <email> <unix-ts> <tz>\t<message>".
func parseReflogLine(line string) (ReflogEntry, error) {
	head, message, _ := strings.Cut(line, "\t")
	oldHash, rest, ok := strings.Cut(head, " ")
	if !ok || !isObjectID(oldHash) {
		return ReflogEntry{}, fmt.Errorf("invalid reflog line: %q", line)
	}
	newHash, ident, ok := strings.Cut(rest, " ")
	if !ok || !isObjectID(newHash) {
		return ReflogEntry{}, fmt.Errorf("invalid reflog line: %q", line)
	}
	actor, err := parseIdent(ident)
	if err != nil {
		return ReflogEntry{}, err
	}
	return ReflogEntry{
		OldHash: oldHash,
		NewHash: newHash,
		Actor:   actor,
		Message: strings.TrimSpace(message),
	}, nil
}

// parseIdent parses "Name <email> 1700000000 +0100".
func parseIdent(ident string) (Signature, error) {
	gt := strings.LastIndexByte(ident, '>')
	if gt < 0 {
		return Signature{}, fmt.Errorf("invalid identity: %q", ident)
	}
	lt := strings.LastIndexByte(ident[:gt], '<')
	if lt < 0 {
		return Signature{}, fmt.Errorf("invalid identity: %q", ident)
	}
	sig := Signature{
		Name:  strings.TrimSpace(ident[:lt]),
		Email: ident[lt+1 : gt],
	}
	fields := strings.Fields(ident[gt+1:])
	if len(fields) == 0 {
		return sig, nil
	}
	secs, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return sig, nil
	}
	loc := time.UTC
	if len(fields) > 1 {
		if offset, ok := parseTZOffset(fields[1]); ok {
			loc = time.FixedZone("", offset)
		}
	}
	sig.When = time.Unix(secs, 0).In(loc)
	return sig, nil
}

func parseTZOffset(tz string) (int, bool) {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return 0, false
	}
	hours, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(tz[3:5])
	if err != nil {
		return 0, false
	}
	offset := hours*3600 + minutes*60
	if tz[0] == '-' {
		offset = -offset
	}
	return offset, true
}

// isObjectID accepts SHA-1 and SHA-256 hex object names.
func isObjectID(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
