// SPDX-License-Identifier: MIT

package g2o

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// record is one non-empty line: a tag followed by its raw fields.
type record struct {
	Tag    string   `parser:"@Ident"`
	Fields []string `parser:"( @Number | @Ident )*"`
}

var recordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_:.\-]*`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

var recordParser = participle.MustBuild[record](
	participle.Lexer(recordLexer),
	participle.Elide("Whitespace", "Comment"),
)
