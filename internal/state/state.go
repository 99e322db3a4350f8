package state

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sokinpui/threeside.go/internal/ui"
)

const (
	stateDirName  = ".threeside"
	stateFileName = "hints"
)

// Manager is a hint store persisted in a state file. Every Put rewrites the
// file so hints survive the process.
type Manager struct {
	mu        sync.Mutex
	statePath string
	hints     map[string]string
	StateDir  string
}

// findGitRoot finds the root of the git repository.
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// New creates and loads a state manager keeping its file in stateDir. An
// empty stateDir means .threeside at the git root, or in the working
// directory outside a repository.
func New(stateDir string) (*Manager, error) {
	if stateDir == "" {
		rootDir, err := findGitRoot()
		if err != nil {
			rootDir, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("could not get current working directory: %w", err)
			}
		}
		stateDir = filepath.Join(rootDir, stateDirName)
	}

	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create state directory: %w", err)
	}
	m := &Manager{
		statePath: filepath.Join(stateDir, stateFileName),
		StateDir:  stateDir,
		hints:     make(map[string]string),
	}
	if err := m.load(); err != nil {
		ui.Warning("Ignoring unreadable state file %s: %v", m.statePath, err)
		m.hints = make(map[string]string)
	}
	return m, nil
}

// Path returns the location of the state file.
func (m *Manager) Path() string {
	return m.statePath
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	content := string(data)
	// Normalize line endings to LF
	content = strings.ReplaceAll(content, "\r\n", "\n")
	for i, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "\t")
		if !ok || key == "" {
			return fmt.Errorf("invalid state file: line %d is not a key/value record", i+1)
		}
		m.hints[key] = value
	}
	return nil
}

func (m *Manager) save() error {
	keys := make([]string, 0, len(m.hints))
	for k := range m.hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s\t%s\n", k, m.hints[k])
	}

	tmp := m.statePath + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, m.statePath)
}

// Get returns the hint stored under key.
func (m *Manager) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.hints[key]
	return v, ok
}

// Put stores a hint and writes the state file. Keys and values must not
// contain tabs or newlines.
func (m *Manager) Put(key, value string) {
	if strings.ContainsAny(key, "\t\n") || strings.ContainsAny(value, "\t\n") {
		ui.Warning("Not storing hint %q: keys and values cannot contain tabs or newlines", key)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.hints[key]; ok && old == value {
		return
	}
	m.hints[key] = value
	if err := m.save(); err != nil {
		ui.Warning("Failed to write state file %s: %v", m.statePath, err)
	}
}
