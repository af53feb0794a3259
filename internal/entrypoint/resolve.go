package entrypoint

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/minhhai2209/broker-gpt-2/internal/platform"
	"github.com/pingcap/errors"
)

// ErrNotFound is returned (as the cause) when no local entrypoint exists.
var ErrNotFound = errors.New("local CLI entrypoint not found")

// Kind tells how a Command was resolved.
type Kind string

// Entrypoint kinds, in search order.
const (
	KindScript Kind = "script"
	KindBinary Kind = "binary"
)

// Layout is the local dependency layout searched by Resolve. Paths must be
// absolute or relative to the working directory.
type Layout struct {
	Script      string // e.g. <root>/node_modules/@openai/codex/bin/codex.js
	Interpreter string // e.g. node
	BinDir      string // e.g. <root>/node_modules/.bin
	BinName     string // e.g. codex
}

// BinaryPath returns the platform-specific bin shim path.
func (l Layout) BinaryPath() string {
	return filepath.Join(l.BinDir, platform.BinaryName(l.BinName))
}

// Command is a resolved entrypoint: an executable plus leading arguments.
type Command struct {
	Path string
	Args []string
	Kind Kind
}

// String renders the command line for logs.
func (c *Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}

// LookPathFunc finds an executable. exec.LookPath satisfies it.
type LookPathFunc func(file string) (string, error)

// Resolve searches the layout in order: the script entrypoint run through
// its interpreter, then the bin shim. A script whose interpreter cannot be
// found falls through to the bin shim.
func Resolve(l Layout, lookPath LookPathFunc) (*Command, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var tried []string
	if l.Script != "" {
		tried = append(tried, l.Script)
		if isFile(l.Script) {
			interp, err := lookPath(l.Interpreter)
			if err == nil {
				return &Command{Path: interp, Args: []string{l.Script}, Kind: KindScript}, nil
			}
			tried[len(tried)-1] = fmt.Sprintf("%s (interpreter %q unavailable)", l.Script, l.Interpreter)
		}
	}

	if l.BinName != "" {
		bin := l.BinaryPath()
		tried = append(tried, bin)
		if isFile(bin) {
			return &Command{Path: bin, Kind: KindBinary}, nil
		}
	}

	return nil, errors.Annotatef(ErrNotFound, "searched %s", strings.Join(tried, ", "))
}

// IsNotFound reports whether err means no entrypoint was found.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
