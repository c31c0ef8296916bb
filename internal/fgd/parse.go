package fgd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseError reports a syntax error with its source position.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ParseFile parses an FGD file from disk.
func ParseFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fgd file: %w", err)
	}
	return parse(string(data), path)
}

// Parse parses FGD source from a reader. The filename is used for error
// positions only and may be empty.
func Parse(r io.Reader, filename string) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fgd source: %w", err)
	}
	return parse(string(data), filename)
}

// ParseString parses FGD source from a string.
func ParseString(src string) (*Schema, error) {
	return parse(src, "")
}

// classTypes is the closed set of entity class directives. Everything
// else after an '@' is an editor data block or a syntax error.
var classTypes = map[string]bool{
	"baseclass":     true,
	"pointclass":    true,
	"solidclass":    true,
	"npcclass":      true,
	"keyframeclass": true,
	"moveclass":     true,
	"filterclass":   true,
}

func parse(src, filename string) (*Schema, error) {
	p := &parser{lex: &lexer{src: src, line: 1}, file: filename}
	if err := p.advance(); err != nil {
		return nil, err
	}
	schema := &Schema{}
	for p.tok.kind != tokEOF {
		if err := p.expect(tokAt, "'@'"); err != nil {
			return nil, err
		}
		directive := p.tok
		if err := p.expect(tokIdent, "directive name"); err != nil {
			return nil, err
		}
		if classTypes[strings.ToLower(directive.text)] {
			ent, err := p.parseClass(directive.text)
			if err != nil {
				return nil, err
			}
			schema.Entities = append(schema.Entities, ent)
			continue
		}
		ed, err := p.parseEditorData(directive.text)
		if err != nil {
			return nil, err
		}
		schema.EditorData = append(schema.EditorData, ed)
	}
	return schema, nil
}

type parser struct {
	lex  *lexer
	tok  token
	file string
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return &ParseError{File: p.file, Line: p.lex.line, Msg: err.Error()}
	}
	p.tok = tok
	return nil
}

// expect consumes the current token if it has the given kind, otherwise
// returns a positioned syntax error naming what was wanted.
func (p *parser) expect(kind tokenKind, want string) error {
	if p.tok.kind != kind {
		return p.errorf("expected %s, got %q", want, p.tok.text)
	}
	return p.advance()
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{File: p.file, Line: p.tok.line, Msg: fmt.Sprintf(format, args...)}
}

// parseClass parses one entity definition:
//
//	@PointClass base(A, B) size(-8 -8 -8, 8 8 8) = name : "desc" [ body ]
func (p *parser) parseClass(classType string) (*Entity, error) {
	ent := &Entity{ClassType: classType}

	for p.tok.kind == tokIdent {
		def := Definition{Name: p.tok.text}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokLParen {
			args, err := p.parseDefArgs()
			if err != nil {
				return nil, err
			}
			def.Args = args
		}
		ent.Definitions = append(ent.Definitions, def)
	}

	if err := p.expect(tokEquals, "'='"); err != nil {
		return nil, err
	}
	ent.Name = p.tok.text
	if err := p.expect(tokIdent, "entity name"); err != nil {
		return nil, err
	}

	if p.tok.kind == tokColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		desc, err := p.parseConcatString()
		if err != nil {
			return nil, err
		}
		ent.Description = desc
	}

	if p.tok.kind == tokLBracket {
		if err := p.parseClassBody(ent); err != nil {
			return nil, err
		}
	}
	return ent, nil
}

// parseDefArgs parses a parenthesized argument list. Arguments are
// separated by commas; tokens within one argument are joined by spaces,
// so size(-8 -8 -8, 8 8 8) yields two arguments.
func (p *parser) parseDefArgs() ([]string, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	args := []string{}
	var parts []string
	flush := func() {
		if len(parts) > 0 {
			args = append(args, strings.Join(parts, " "))
			parts = nil
		}
	}
	for {
		switch p.tok.kind {
		case tokRParen:
			flush()
			return args, p.advance()
		case tokComma:
			flush()
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokIdent, tokNumber, tokString:
			parts = append(parts, p.tok.text)
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokEOF:
			return nil, p.errorf("unterminated argument list")
		default:
			return nil, p.errorf("unexpected %q in argument list", p.tok.text)
		}
	}
}

func (p *parser) parseClassBody(ent *Entity) error {
	if err := p.advance(); err != nil { // consume '['
		return err
	}
	for p.tok.kind != tokRBracket {
		if p.tok.kind == tokEOF {
			return p.errorf("unterminated class body")
		}
		word := p.tok
		if err := p.expect(tokIdent, "property or io declaration"); err != nil {
			return err
		}

		// "input Name(type)" vs a property that happens to be named
		// "input": the io form has an identifier next, the property form
		// has '(' next.
		if p.tok.kind == tokIdent && (strings.EqualFold(word.text, "input") || strings.EqualFold(word.text, "output")) {
			kind := KindInput
			if strings.EqualFold(word.text, "output") {
				kind = KindOutput
			}
			sig, err := p.parseIO(kind)
			if err != nil {
				return err
			}
			if kind == KindInput {
				ent.Inputs = append(ent.Inputs, sig)
			} else {
				ent.Outputs = append(ent.Outputs, sig)
			}
			continue
		}

		if err := p.parseProperty(ent, word.text); err != nil {
			return err
		}
	}
	return p.advance() // consume ']'
}

// parseIO parses "input Name(type) : "desc"" with the leading keyword
// already consumed.
func (p *parser) parseIO(kind IOKind) (*IOSignal, error) {
	sig := &IOSignal{Kind: kind, Name: p.tok.text}
	if err := p.expect(tokIdent, "io name"); err != nil {
		return nil, err
	}
	if err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	sig.ValueType = p.tok.text
	if err := p.expect(tokIdent, "io value type"); err != nil {
		return nil, err
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	if p.tok.kind == tokColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		desc, err := p.parseConcatString()
		if err != nil {
			return nil, err
		}
		sig.Description = desc
	}
	return sig, nil
}

// parseProperty parses one keyvalue declaration with the name already
// consumed:
//
//	name(type) [readonly] [report] : "display" : default : "desc" = [ choices ]
//
// A "spawnflags(flags)" declaration is stored on the entity's spawnflag
// list instead of its property list.
func (p *parser) parseProperty(ent *Entity, name string) error {
	prop := &Property{Name: name}

	if err := p.expect(tokLParen, "'('"); err != nil {
		return err
	}
	prop.ValueType = p.tok.text
	if err := p.expect(tokIdent, "property value type"); err != nil {
		return err
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return err
	}

	// Modifiers end at the first identifier that is not one. A bare
	// property ("origin(origin)") may be followed directly by the next
	// declaration's name, which parseClassBody consumes.
	for p.tok.kind == tokIdent {
		if strings.EqualFold(p.tok.text, "readonly") {
			prop.Readonly = true
		} else if strings.EqualFold(p.tok.text, "report") {
			prop.Report = true
		} else {
			break
		}
		if err := p.advance(); err != nil {
			return err
		}
	}

	// Up to three colon-separated segments: display name, default value,
	// description. A segment may be empty ("speed(integer) : : 100").
	for seg := 0; seg < 3 && p.tok.kind == tokColon; seg++ {
		if err := p.advance(); err != nil {
			return err
		}
		if p.tok.kind == tokColon || p.tok.kind == tokEquals || p.tok.kind == tokRBracket || p.tok.kind == tokIdent && seg == 2 {
			continue // empty segment
		}
		switch seg {
		case 0:
			if p.tok.kind != tokString {
				continue
			}
			s, err := p.parseConcatString()
			if err != nil {
				return err
			}
			prop.DisplayName = s
		case 1:
			if p.tok.kind != tokString && p.tok.kind != tokNumber && p.tok.kind != tokIdent {
				return p.errorf("expected default value, got %q", p.tok.text)
			}
			prop.DefaultValue = p.tok.text
			if err := p.advance(); err != nil {
				return err
			}
		case 2:
			if p.tok.kind != tokString {
				return p.errorf("expected description string, got %q", p.tok.text)
			}
			s, err := p.parseConcatString()
			if err != nil {
				return err
			}
			prop.Description = s
		}
	}

	isFlags := strings.EqualFold(name, "spawnflags") && strings.EqualFold(prop.ValueType, "flags")

	if p.tok.kind == tokEquals {
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.expect(tokLBracket, "'['"); err != nil {
			return err
		}
		for p.tok.kind != tokRBracket {
			if p.tok.kind == tokEOF {
				return p.errorf("unterminated choices body")
			}
			value, display, def, err := p.parseChoiceItem()
			if err != nil {
				return err
			}
			if isFlags {
				ent.Spawnflags = append(ent.Spawnflags, &Spawnflag{
					Value:       value,
					DisplayName: display,
					Default:     def != "" && def != "0",
				})
			} else {
				prop.Choices = append(prop.Choices, Choice{Value: value, DisplayName: display})
			}
		}
		if err := p.advance(); err != nil { // consume ']'
			return err
		}
	}

	if !isFlags {
		ent.Properties = append(ent.Properties, prop)
	}
	return nil
}

// parseChoiceItem parses one "value : "display" [: default]" entry.
func (p *parser) parseChoiceItem() (value, display, def string, err error) {
	if p.tok.kind != tokNumber && p.tok.kind != tokString && p.tok.kind != tokIdent {
		return "", "", "", p.errorf("expected choice value, got %q", p.tok.text)
	}
	value = p.tok.text
	if err = p.advance(); err != nil {
		return
	}
	if err = p.expect(tokColon, "':'"); err != nil {
		return
	}
	display, err = p.parseConcatString()
	if err != nil {
		return
	}
	if p.tok.kind == tokColon {
		if err = p.advance(); err != nil {
			return
		}
		if p.tok.kind != tokNumber && p.tok.kind != tokIdent {
			return "", "", "", p.errorf("expected choice default, got %q", p.tok.text)
		}
		def = p.tok.text
		err = p.advance()
	}
	return
}

// parseConcatString parses one string literal, following FGD's
// '+'-concatenation of adjacent literals.
func (p *parser) parseConcatString() (string, error) {
	if p.tok.kind != tokString {
		return "", p.errorf("expected string, got %q", p.tok.text)
	}
	var b strings.Builder
	b.WriteString(p.tok.text)
	if err := p.advance(); err != nil {
		return "", err
	}
	for p.tok.kind == tokPlus {
		if err := p.advance(); err != nil {
			return "", err
		}
		if p.tok.kind != tokString {
			return "", p.errorf("expected string after '+', got %q", p.tok.text)
		}
		b.WriteString(p.tok.text)
		if err := p.advance(); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// parseEditorData parses the non-entity directives.
func (p *parser) parseEditorData(classType string) (*EditorData, error) {
	switch strings.ToLower(classType) {
	case "include":
		path := p.tok.text
		if err := p.expect(tokString, "include path"); err != nil {
			return nil, err
		}
		return &EditorData{ClassType: classType, Data: path}, nil

	case "mapsize":
		if err := p.expect(tokLParen, "'('"); err != nil {
			return nil, err
		}
		lo, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokComma, "','"); err != nil {
			return nil, err
		}
		hi, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return &EditorData{ClassType: classType, Data: []any{lo, hi}}, nil

	case "materialexclusion":
		if err := p.expect(tokLBracket, "'['"); err != nil {
			return nil, err
		}
		dirs := []any{}
		for p.tok.kind == tokString {
			dirs = append(dirs, p.tok.text)
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if err := p.expect(tokRBracket, "']'"); err != nil {
			return nil, err
		}
		return &EditorData{ClassType: classType, Data: dirs}, nil

	case "autovisgroup":
		if err := p.expect(tokEquals, "'='"); err != nil {
			return nil, err
		}
		name := p.tok.text
		if err := p.expect(tokString, "visgroup name"); err != nil {
			return nil, err
		}
		if err := p.expect(tokLBracket, "'['"); err != nil {
			return nil, err
		}
		groups := map[string]any{}
		for p.tok.kind == tokString {
			child := p.tok.text
			if err := p.advance(); err != nil {
				return nil, err
			}
			members := []any{}
			if p.tok.kind == tokLBracket {
				if err := p.advance(); err != nil {
					return nil, err
				}
				for p.tok.kind == tokString {
					members = append(members, p.tok.text)
					if err := p.advance(); err != nil {
						return nil, err
					}
				}
				if err := p.expect(tokRBracket, "']'"); err != nil {
					return nil, err
				}
			}
			groups[child] = members
		}
		if err := p.expect(tokRBracket, "']'"); err != nil {
			return nil, err
		}
		return &EditorData{ClassType: classType, Name: name, Data: groups}, nil

	default:
		return nil, p.errorf("unknown directive %q", "@"+classType)
	}
}

func (p *parser) parseInt() (int64, error) {
	if p.tok.kind != tokNumber {
		return 0, p.errorf("expected number, got %q", p.tok.text)
	}
	n, err := strconv.ParseInt(p.tok.text, 10, 64)
	if err != nil {
		return 0, p.errorf("invalid integer %q", p.tok.text)
	}
	return n, p.advance()
}
