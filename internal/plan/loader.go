package plan

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a single YAML plan file.
func LoadFile(path string) (Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan file: %w", err)
	}
	var p Plan
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Plan{}, fmt.Errorf("parse plan file %s: %w", path, err)
	}
	if p.Name == "" {
		base := filepath.Base(path)
		p.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return p, nil
}

// LoadDir reads all *.yaml/*.yml plan files in dir, sorted by filename.
// A missing directory is not an error; unparseable files are logged and
// skipped so one bad file cannot take down the whole library.
func LoadDir(dir string, logger *log.Logger) []Plan {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Printf("PlanLoader: cannot read %s: %v", dir, err)
		}
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var plans []Plan
	for _, name := range names {
		p, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Printf("PlanLoader: skipping %s: %v", name, err)
			continue
		}
		plans = append(plans, p)
		logger.Printf("PlanLoader: loaded plan %q from %s", p.Name, name)
	}
	return plans
}
