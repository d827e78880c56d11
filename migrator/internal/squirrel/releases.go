package squirrel

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	v "github.com/hashicorp/go-version"
)

// ReleasesFileName is the index Squirrel keeps next to its packages
const ReleasesFileName = "RELEASES"

// ErrNoFullRelease is returned when a RELEASES index lists no full package
var ErrNoFullRelease = errors.New("no full release found")

var packageFileRegexp = regexp.MustCompile(`^(.+?)-(\d+(?:\.\d+)*(?:-[0-9A-Za-z.]+)?)-(full|delta)\.nupkg$`)

// ReleaseEntry is one line of a RELEASES index
type ReleaseEntry struct {
	SHA1        string
	Filename    string
	Filesize    int64
	PackageName string
	Version     *v.Version
	IsDelta     bool
}

// ParseReleaseEntry parses a "<sha1> <filename> <size>" line
func ParseReleaseEntry(line string) (ReleaseEntry, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return ReleaseEntry{}, fmt.Errorf("malformed release entry %q", line)
	}

	size, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return ReleaseEntry{}, fmt.Errorf("malformed size in release entry %q: %w", line, err)
	}

	matches := packageFileRegexp.FindStringSubmatch(fields[1])
	if matches == nil {
		return ReleaseEntry{}, fmt.Errorf("malformed package name %q", fields[1])
	}

	version, err := v.NewVersion(matches[2])
	if err != nil {
		return ReleaseEntry{}, fmt.Errorf("parse version of %s: %w", fields[1], err)
	}

	return ReleaseEntry{
		SHA1:        fields[0],
		Filename:    fields[1],
		Filesize:    size,
		PackageName: matches[1],
		Version:     version,
		IsDelta:     matches[3] == "delta",
	}, nil
}

// ParseReleases reads every entry of a RELEASES index
func ParseReleases(r io.Reader) ([]ReleaseEntry, error) {
	var entries []ReleaseEntry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		entry, err := ParseReleaseEntry(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read releases: %w", err)
	}

	return entries, nil
}

// ReadReleasesFile parses the RELEASES index at path
func ReadReleasesFile(path string) ([]ReleaseEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseReleases(f)
}

// LatestFullRelease returns the full package with the highest version
func LatestFullRelease(entries []ReleaseEntry) (ReleaseEntry, error) {
	var latest *ReleaseEntry
	for i := range entries {
		entry := &entries[i]
		if entry.IsDelta {
			continue
		}
		if latest == nil || entry.Version.GreaterThan(latest.Version) {
			latest = entry
		}
	}

	if latest == nil {
		return ReleaseEntry{}, ErrNoFullRelease
	}
	return *latest, nil
}
