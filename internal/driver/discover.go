package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"busguard/internal/config"
)

// JavaExt is the extension of the files busguard reads.
const JavaExt = ".java"

// Discover expands inputs (files or directories) to a sorted, de-duplicated
// list of *.java files. With no inputs the manifest source roots are used;
// missing roots are skipped then, while a missing explicit input is an error.
// Hidden directories and paths matching the manifest exclude patterns are
// skipped.
func Discover(inputs []string, m *config.Manifest) ([]string, error) {
	explicit := len(inputs) > 0
	if !explicit && m != nil {
		inputs = m.SourceDirs()
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if m != nil && m.Excluded(path) {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", in, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			if !explicit && os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("input %s: %w", in, err)
		}
		if !info.IsDir() {
			// явно указанный файл берём даже без расширения .java
			add(abs)
			continue
		}
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != abs && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, JavaExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", in, err)
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
