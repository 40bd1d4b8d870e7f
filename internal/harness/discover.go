package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindScenarios returns the scenario files under dir, sorted by path.
// A path naming a single file is returned as is.
func FindScenarios(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scenario path: %w", err)
	}
	if !info.IsDir() {
		return []string{dir}, nil
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan scenarios: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// RunDir loads and runs every scenario under dir. Load failures are
// returned as errors keyed by path; execution failures land in the result.
func RunDir(dir string) (map[string]*Result, map[string]error, error) {
	files, err := FindScenarios(dir)
	if err != nil {
		return nil, nil, err
	}

	results := make(map[string]*Result, len(files))
	failures := make(map[string]error)
	for _, path := range files {
		s, err := LoadScenario(path)
		if err != nil {
			failures[path] = err
			continue
		}
		res, err := Run(s)
		if err != nil {
			failures[path] = err
			continue
		}
		results[path] = res
	}
	return results, failures, nil
}
