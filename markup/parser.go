package markup

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// 标记语法：普通文本中以 [name=value key=value] 开启样式，以 [/name] 关闭；
// 反斜杠转义下一个字符，例如 \[ 输出字面量方括号。
var (
	markupLexer = lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Escaped", Pattern: `\\[\s\S]`},
			{Name: "CloseTag", Pattern: `\[/`, Action: lexer.Push("Tag")},
			{Name: "OpenTag", Pattern: `\[`, Action: lexer.Push("Tag")},
			{Name: "Text", Pattern: `[^\[\\]+`},
		},
		"Tag": {
			{Name: "Whitespace", Pattern: `[ \t]+`},
			{Name: "TagEnd", Pattern: `\]`, Action: lexer.Pop()},
			{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_-]*`},
			{Name: "Eq", Pattern: `=`},
			{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
			{Name: "Bare", Pattern: `[^\s\]"=]+`},
		},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(markupLexer),
		participle.Elide("Whitespace"),
	)
)

// Document is the root of a parsed markup string.
type Document struct {
	Nodes []*Node `parser:"@@*"`
}

// Node is either literal text, an escaped character or a styled span.
type Node struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Text    *string        `parser:"  @Text"`
	Escaped *string        `parser:"| @Escaped"`
	Span    *Span          `parser:"| @@"`
}

// Span is an open tag, its children and the matching close tag.
type Span struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Tag      *Tag           `parser:"OpenTag @@ TagEnd"`
	Children []*Node        `parser:"@@*"`
	Close    string         `parser:"CloseTag @Ident TagEnd"`
}

// Tag 形如 name、name=value 或 name=value key=value…
type Tag struct {
	Name  string  `parser:"@Ident"`
	Value *Value  `parser:"( Eq @@ )?"`
	Attrs []*Attr `parser:"@@*"`
}

// Attr is an extra key=value pair inside a tag.
type Attr struct {
	Key   string `parser:"@Ident Eq"`
	Value *Value `parser:"@@"`
}

// Value is a bare word or a quoted string.
type Value struct {
	Quoted *StringLiteral `parser:"  @String"`
	Bare   *string        `parser:"| @( Ident | Bare )"`
}

// String returns the unquoted text of the value.
func (v *Value) String() string {
	switch {
	case v == nil:
		return ""
	case v.Quoted != nil:
		return string(*v.Quoted)
	case v.Bare != nil:
		return *v.Bare
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("字符串字面量缺少内容")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses markup from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses markup from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
