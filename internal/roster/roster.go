// Package roster reads row-oriented party files. One character per line,
// eleven comma-separated fields; blank lines and #-comments are skipped.
package roster

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/velski/habopt/internal/model"
)

// Ext is the roster file extension Discover looks for.
const Ext = ".roster"

// Load reads and validates every character row in the file. Any malformed
// or invalid row aborts the load; skipping bad members would silently
// change what the optimizers optimize.
func Load(path string) ([]*model.Character, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster %s: %w", path, err)
	}
	defer f.Close()

	var party []*model.Character
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		c, err := model.ParseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		party = append(party, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	if len(party) == 0 {
		return nil, fmt.Errorf("roster %s has no characters", path)
	}
	return party, nil
}

// Discover lists the candidate roster files in dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading roster dir %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
