package dsl

import (
	"io"
	"os"
	"strings"

	"github.com/maproom/mafe/internal/ast"
)

// Parse reads a whole map specification. Grammar errors are enriched
// with the byte offset and a window of the offending input; resolution
// errors (a value naming a data binding that is not in lexical scope)
// surface as ErrDataNotInScope.
func Parse(r io.Reader) (*ast.MapSpec, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrParse.New(err.Error())
	}
	return ParseString(string(raw))
}

// ParseString parses a map specification held in memory.
func ParseString(input string) (*ast.MapSpec, error) {
	file, err := mapParser.ParseString("", normalize(input))
	if err != nil {
		return nil, enrichSyntaxError(input, err)
	}
	return convertMapFile(file)
}

// ParseFile parses the map specification at path.
func ParseFile(path string) (*ast.MapSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrParse.New(err.Error())
	}
	defer f.Close()
	return Parse(f)
}

// normalize folds CRLF line endings and guarantees the input does not
// end mid-line, so the block grammar only ever sees \n terminators.
func normalize(input string) string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	return strings.TrimRight(input, " \t\n") + "\n"
}
