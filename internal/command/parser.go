// Command script parsing for single- and multi-robot command files
package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"vacuum-sim/internal/engine"
)

// ErrIO is returned when a command source cannot be read.
var ErrIO = errors.New("command source unreadable")

// Script is a parsed command file. Every command line ends at a newline or
// at the end of the file.
type Script struct {
	Lines []*Line `parser:"( @@? EOL )* @@?"`
}

// Line is either a bare action or "<robot> <action>[,<action>...]".
type Line struct {
	Pos     lexer.Position
	Robot   *int     `parser:"@Int?"`
	Actions []string `parser:"@Token ( ',' @Token )*"`
}

var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Int", Pattern: `\d+\b`},
	{Name: "Token", Pattern: `[A-Za-z_][^\s,#]*`},
	{Name: "Punct", Pattern: `,`},
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var parser = participle.MustBuild[Script](
	participle.Lexer(scriptLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Command is one requested action for one robot. Action is kept as raw text
// so that unknown tokens surface when they are dispatched.
type Command struct {
	RobotID int    `json:"robot_id"`
	Action  string `json:"action"`
	Line    int    `json:"line"`
}

// Parse reads a command script. Lines without a robot id are attributed to
// defaultRobot.
func Parse(name string, r io.Reader, defaultRobot int) ([]Command, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrIO, name, err)
	}
	script, err := parser.ParseBytes(name, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrInvalidCommand, err)
	}
	var cmds []Command
	for _, l := range script.Lines {
		id := defaultRobot
		if l.Robot != nil {
			id = *l.Robot
		}
		for _, a := range l.Actions {
			cmds = append(cmds, Command{RobotID: id, Action: a, Line: l.Pos.Line})
		}
	}
	return cmds, nil
}

// ParseString is Parse over an in-memory script.
func ParseString(src string, defaultRobot int) ([]Command, error) {
	return Parse("", strings.NewReader(src), defaultRobot)
}

// ParseFile opens path and parses it.
func ParseFile(path string, defaultRobot int) ([]Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	return Parse(path, f, defaultRobot)
}
