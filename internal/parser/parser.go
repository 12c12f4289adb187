package parser

import (
	"errors"
	"strconv"

	"sexpr/internal/ast"
	"sexpr/internal/diag"
	"sexpr/internal/source"
	"sexpr/internal/token"
	"sexpr/internal/trace"
)

// Parser: состояние группировщика на один поток токенов
type Parser struct {
	tokens []token.Token
	pos    int
	opts   Options
	depth  int
	span   uint64 // trace parent for group points
}

// Parse groups tokens into a tree whose root is always a list.
//
// ';' wraps the pending statement into its own list; end of input (EOF or
// the end of the slice) and closing brackets splice the pending nodes into
// the enclosing list unwrapped. Tokens after EOF are ignored.
func Parse(tokens []token.Token, opts Options) (ast.Node, error) {
	span := trace.Begin(opts.Tracer, trace.ScopePass, "parse", 0)
	p := &Parser{tokens: tokens, opts: opts, span: span.ID()}

	root, err := p.parseProgram()
	if err != nil {
		span.End("error")
		return ast.Node{}, err
	}
	span.WithExtra("statements", strconv.Itoa(root.Len())).End("")
	return root, nil
}

func (p *Parser) peek() (token.Token, bool) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// parseProgram is the top level: statements are appended to the root.
func (p *Parser) parseProgram() (ast.Node, error) {
	root := make([]ast.Node, 0, 8)
	var stmt []ast.Node

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == token.EOF {
			p.advance()
			root = append(root, stmt...)
			break
		}

		switch {
		case isAtom(tok):
			stmt = append(stmt, ast.Atom(tok))
			p.advance()
		case tok.IsOpen():
			p.advance()
			group, err := p.parseGroup(tok)
			if err != nil {
				return ast.Node{}, err
			}
			stmt = append(stmt, group)
		case tok.IsTerminator():
			root = append(root, p.statement(stmt, tok))
			stmt = nil
			p.advance()
		case tok.IsClose() && p.opts.Strict:
			return ast.Node{}, p.fail(&Error{Err: ErrUnexpectedCloser, Code: diag.SynUnexpectedToken, Tok: tok})
		default:
			// неизвестная пунктуация и лишние закрывающие скобки пропускаются
			p.advance()
		}
	}

	program := ast.List(ast.GroupProgram, root...)
	program.Span = coverAll(root)
	return program, nil
}

// parseGroup runs right after the opener was consumed and returns one list.
func (p *Parser) parseGroup(open token.Token) (ast.Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if limit := p.opts.maxDepth(); limit > 0 && p.depth > limit {
		return ast.Node{}, p.fail(&Error{Err: ErrTooDeep, Code: diag.SynNestingTooDeep, Open: open, Depth: limit})
	}
	trace.Point(p.opts.Tracer, trace.ScopeGroup, "group "+open.Text, "depth="+strconv.Itoa(p.depth), p.span)

	items := make([]ast.Node, 0, 4)
	var stmt []ast.Node
	closeSpan := open.Span

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == token.EOF {
			// EOF остаётся для верхнего уровня
			if p.opts.Strict {
				return ast.Node{}, p.fail(&Error{Err: ErrUnclosedGroup, Code: diag.SynUnclosedDelimiter, Tok: tok, Open: open})
			}
			items = append(items, stmt...)
			break
		}

		if tok.IsClose() {
			if p.opts.Strict && tok.Text != token.Closer(open.Text) {
				return ast.Node{}, p.fail(&Error{Err: ErrMismatchedBracket, Code: diag.SynMismatchedBracket, Tok: tok, Open: open})
			}
			p.advance()
			items = append(items, stmt...)
			closeSpan = tok.Span
			break
		}

		switch {
		case isAtom(tok):
			stmt = append(stmt, ast.Atom(tok))
			p.advance()
		case tok.IsOpen():
			p.advance()
			group, err := p.parseGroup(tok)
			if err != nil {
				return ast.Node{}, err
			}
			stmt = append(stmt, group)
		case tok.IsTerminator():
			items = append(items, p.statement(stmt, tok))
			stmt = nil
			p.advance()
		default:
			p.advance()
		}
	}

	group := ast.List(ast.GroupForOpener(open.Text), items...)
	group.Span = open.Span.Cover(closeSpan)
	if len(items) > 0 {
		group.Span = group.Span.Cover(coverAll(items))
	}
	return group, nil
}

// statement wraps a ';'-terminated buffer.
func (p *Parser) statement(nodes []ast.Node, term token.Token) ast.Node {
	if len(nodes) == 0 && p.opts.Strict {
		diag.ReportWarning(p.opts.Reporter, diag.SynEmptyStatement, term.Span, "empty statement").Emit()
	}
	stmt := ast.List(ast.GroupStatement, nodes...)
	stmt.Span = coverAll(nodes).Cover(term.Span)
	if len(nodes) == 0 {
		stmt.Span = term.Span
	}
	return stmt
}

func (p *Parser) fail(e *Error) error {
	primary := e.Tok.Span
	if errors.Is(e.Err, ErrUnclosedGroup) || errors.Is(e.Err, ErrTooDeep) {
		primary = e.Open.Span
	}
	b := diag.ReportError(p.opts.Reporter, e.Code, primary, e.Error())
	if errors.Is(e.Err, ErrMismatchedBracket) {
		b.WithNote(e.Open.Span, "group opened here")
	}
	b.Emit()
	return e
}

func isAtom(tok token.Token) bool {
	return tok.Kind == token.Value || tok.Kind == token.Operator
}

func coverAll(nodes []ast.Node) (sp source.Span) {
	for i, n := range nodes {
		if i == 0 {
			sp = n.Span
			continue
		}
		sp = sp.Cover(n.Span)
	}
	return sp
}
