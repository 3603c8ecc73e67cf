// Package command assembles the shell text handed to the host runtime.
//
// Every command is an ordered list of optional fragments joined by a fixed
// separator. Fragments are trusted: values come from a resolved
// configuration, and only fact values are shell-quoted.
package command

import (
	"fmt"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// Common separators.
const (
	SepWord    = " "
	SepAnd     = " && "
	SepLine    = "\n"
	SepCommand = "; "
)

// Builder collects fragments in order and joins the non-empty ones.
type Builder struct {
	sep   string
	parts []string
}

// NewBuilder returns a Builder joining fragments with sep.
func NewBuilder(sep string) *Builder {
	return &Builder{sep: sep}
}

// Add appends the fragments that are not empty.
func (b *Builder) Add(fragments ...string) *Builder {
	for _, f := range fragments {
		if f != "" {
			b.parts = append(b.parts, f)
		}
	}
	return b
}

// AddIf appends fragment only when cond holds.
func (b *Builder) AddIf(cond bool, fragment string) *Builder {
	if cond {
		b.Add(fragment)
	}
	return b
}

// Addf appends a formatted fragment.
func (b *Builder) Addf(format string, args ...any) *Builder {
	return b.Add(fmt.Sprintf(format, args...))
}

// Len returns the number of fragments collected so far.
func (b *Builder) Len() int {
	return len(b.parts)
}

func (b *Builder) String() string {
	return strings.Join(b.parts, b.sep)
}

// Sudo prefixes commands with privilege escalation when enabled.
type Sudo struct {
	Enabled bool
	Command string
}

// Wrap returns cmd prefixed with the sudo command, or cmd unchanged.
func (s Sudo) Wrap(cmd string) string {
	if !s.Enabled || s.Command == "" {
		return cmd
	}
	return s.Command + " " + cmd
}

// QuoteValue quotes a single shell word. Words made of safe characters
// are returned as-is.
func QuoteValue(v string) string {
	return shellquote.Join(v)
}
