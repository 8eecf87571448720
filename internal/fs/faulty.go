package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrInjected is what injected faults return unless a rule overrides it.
var ErrInjected = errors.New("injected fault")

// Fault describes when a matched file starts failing.
type Fault struct {
	FailAfterBytes int64 // writes fail once the file holds this many bytes; -1 never
	FailOnSync     bool
	FailOnClose    bool
	Err            error // defaults to ErrInjected
}

// FaultyFS injects errors into files opened through it. Rules match by
// substring of the path; when several match, the one added last wins.
// Operations other than OpenFile pass straight through to the wrapped
// FileSystem.
type FaultyFS struct {
	FileSystem

	mu    sync.Mutex
	order []string
	rules map[string]Fault
}

// NewFaultyFS wraps fsys, falling back to Default when nil.
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}
	return &FaultyFS{FileSystem: fsys, rules: map[string]Fault{}}
}

// AddRule arms paths containing pattern with the given fault.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rules[pattern]; !ok {
		f.order = append(f.order, pattern)
	}
	f.rules[pattern] = fault
}

// match resolves the fault armed for name, harmless when nothing matches.
func (f *FaultyFS) match(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()

	fault := Fault{FailAfterBytes: -1}
	for _, pattern := range f.order {
		if strings.Contains(name, pattern) {
			fault = f.rules[pattern]
		}
	}
	if fault.Err == nil {
		fault.Err = ErrInjected
	}
	return fault
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	file, err := f.FileSystem.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	fault := f.match(name)
	return &faultyFile{File: file, fault: fault, budget: fault.FailAfterBytes}, nil
}

// faultyFile spends its byte budget on writes and fails according to
// its fault once the budget runs out.
type faultyFile struct {
	File
	fault  Fault
	budget int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fault.FailAfterBytes >= 0 && int64(len(p)) > ff.budget {
		return 0, ff.fault.Err
	}
	n, err := ff.File.Write(p)
	ff.budget -= int64(n)
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.Err
	}
	return ff.File.Sync()
}

// Close still closes the real file when failing, so tests do not leak
// descriptors.
func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		ff.File.Close()
		return ff.fault.Err
	}
	return ff.File.Close()
}
