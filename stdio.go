// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Console effect.
//
// Operations perform externally visible reads and writes directly through
// the runner's ambient [Console] capability. The effect carries no resource
// state; only the IO runner installs a handler for it, so console operations
// in the other contexts are composition errors.

// Console is the opaque capability console operations are performed
// against. The package does not reimplement terminal handling; it only
// defines the byte/character/line contract.
type Console interface {
	ReadLine() (string, error)
	ReadChar() (rune, error)
	WriteString(s string) error
}

// stdConsole adapts the process's stdin/stdout.
type stdConsole struct {
	in  *bufio.Reader
	out io.Writer
}

// StdConsole returns a Console over os.Stdin and os.Stdout.
func StdConsole() Console {
	return &stdConsole{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (c *stdConsole) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *stdConsole) ReadChar() (rune, error) {
	r, _, err := c.in.ReadRune()
	return r, err
}

func (c *stdConsole) WriteString(s string) error {
	_, err := io.WriteString(c.out, s)
	return err
}

// ScriptConsole is an in-memory Console for deterministic tests: reads are
// served from a scripted input, writes accumulate in a buffer.
type ScriptConsole struct {
	in  *bufio.Reader
	out strings.Builder
}

// NewScriptConsole creates a ScriptConsole serving reads from input.
func NewScriptConsole(input string) *ScriptConsole {
	return &ScriptConsole{in: bufio.NewReader(strings.NewReader(input))}
}

// ReadLine implements Console. Returns io.EOF once the script is exhausted.
func (c *ScriptConsole) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadChar implements Console.
func (c *ScriptConsole) ReadChar() (rune, error) {
	r, _, err := c.in.ReadRune()
	return r, err
}

// WriteString implements Console.
func (c *ScriptConsole) WriteString(s string) error {
	c.out.WriteString(s)
	return nil
}

// Output returns everything written so far.
func (c *ScriptConsole) Output() string { return c.out.String() }

// PutStr is the effect operation for writing a string.
type PutStr struct {
	Phantom[struct{}]
	S string
}

// Sig implements Operation.
func (PutStr) Sig() Sig { return sigAt(KindConsole, unitType) }

// DispatchConsole handles PutStr in console handler dispatch.
func (o PutStr) DispatchConsole(c Console) Outcome {
	if err := c.WriteString(o.S); err != nil {
		return Outcome{Failed: true, Raised: err}
	}
	return resume(struct{}{}, struct{}{})
}

// PutStrLn is the effect operation for writing a string followed by a
// newline.
type PutStrLn struct {
	Phantom[struct{}]
	S string
}

// Sig implements Operation.
func (PutStrLn) Sig() Sig { return sigAt(KindConsole, unitType) }

// DispatchConsole handles PutStrLn in console handler dispatch.
func (o PutStrLn) DispatchConsole(c Console) Outcome {
	return PutStr{S: o.S + "\n"}.DispatchConsole(c)
}

// PutCh is the effect operation for writing one character.
type PutCh struct {
	Phantom[struct{}]
	Ch rune
}

// Sig implements Operation.
func (PutCh) Sig() Sig { return sigAt(KindConsole, unitType) }

// DispatchConsole handles PutCh in console handler dispatch.
func (o PutCh) DispatchConsole(c Console) Outcome {
	return PutStr{S: string(o.Ch)}.DispatchConsole(c)
}

// GetStr is the effect operation for reading one line.
type GetStr struct{ Phantom[string] }

// Sig implements Operation.
func (GetStr) Sig() Sig { return sigAt(KindConsole, unitType) }

// DispatchConsole handles GetStr in console handler dispatch.
func (GetStr) DispatchConsole(c Console) Outcome {
	line, err := c.ReadLine()
	if err != nil {
		return Outcome{Failed: true, Raised: err}
	}
	return resume(struct{}{}, line)
}

// GetCh is the effect operation for reading one character.
type GetCh struct{ Phantom[rune] }

// Sig implements Operation.
func (GetCh) Sig() Sig { return sigAt(KindConsole, unitType) }

// DispatchConsole handles GetCh in console handler dispatch.
func (GetCh) DispatchConsole(c Console) Outcome {
	r, err := c.ReadChar()
	if err != nil {
		return Outcome{Failed: true, Raised: err}
	}
	return resume(struct{}{}, r)
}

// WriteStr performs PutStr.
func WriteStr(s string) Comp[struct{}] { return Perform(PutStr{S: s}) }

// WriteLine performs PutStrLn.
func WriteLine(s string) Comp[struct{}] { return Perform(PutStrLn{S: s}) }

// WriteChar performs PutCh.
func WriteChar(ch rune) Comp[struct{}] { return Perform(PutCh{Ch: ch}) }

// ReadLine performs GetStr.
func ReadLine() Comp[string] { return Perform(GetStr{}) }

// ReadChar performs GetCh.
func ReadChar() Comp[rune] { return Perform(GetCh{}) }
