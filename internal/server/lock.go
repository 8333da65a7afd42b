package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

var ErrAlreadyRunning = errors.New("server already running")

// Lock is a pidfile that keeps two servers off one config directory.
// The file holds "addr|pid".
type Lock struct {
	path string
}

func LockPath(dir string) string {
	return filepath.Join(dir, constants.ServerLockfileName)
}

// AcquireLock claims the lockfile in dir. A lockfile left by a process that
// is gone, or that is not slotscore, is treated as stale and replaced.
func AcquireLock(dir, addr string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := LockPath(dir)

	if owner, pid, err := readLock(path); err == nil {
		if running(pid) {
			return nil, fmt.Errorf("%w: pid %d listening on %s", ErrAlreadyRunning, pid, owner)
		}
		logger.Warn("Removing stale server lockfile", "path", path, "pid", pid)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	} else if !os.IsNotExist(err) {
		logger.Warn("Replacing unreadable server lockfile", "path", path, "error", err)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove malformed lockfile: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: lockfile %s was just created by another process", ErrAlreadyRunning, path)
		}
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s|%d", addr, getpidFunc()); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

func readLock(path string) (string, int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return "", 0, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil || pid <= 0 {
		return "", 0, errors.New("invalid process ID in lockfile")
	}
	return parts[0], pid, nil
}

func running(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}

// Release removes the lockfile. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
