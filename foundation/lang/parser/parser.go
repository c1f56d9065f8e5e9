// File: parser.go
// Title: Ember Recursive Descent Parser
// Description: Turns a token stream into an AST. One token of lookahead,
//              no backtracking and no error recovery: the first token that
//              does not fit ends the parse with an UnexpectedTokenError.
//              Every node built carries the scope passed to Parse.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2026-10-18 v0.2.0: Ember grammar over token.Source

package parser

import (
	mdwlog "github.com/msto63/ember/foundation/core/log"
	mdwast "github.com/msto63/ember/foundation/lang/ast"
	"github.com/msto63/ember/foundation/lang/scope"
	"github.com/msto63/ember/foundation/lang/token"
)

// Parser implements recursive descent parsing for Ember. A Parser is used
// by one goroutine and for one parse.
type Parser struct {
	src     token.Source
	current token.Token
	logger  *mdwlog.Logger
	options Options
	trace   bool
}

// New creates a parser over src and pre-fetches the first token
func New(src token.Source, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	opts.Keywords = opts.Keywords.WithDefaults()

	logger := opts.Logger.WithField("component", "ember-parser")
	p := &Parser{
		src:     src,
		logger:  logger,
		options: opts,
		trace:   logger.IsLevelEnabled(mdwlog.LevelTrace),
	}
	p.current = src.Next()
	return p
}

// Current returns the lookahead token
func (p *Parser) Current() token.Token {
	return p.current
}

// Parse parses a whole program: a statement sequence, followed by end of
// input when RequireEOF is set
func (p *Parser) Parse(s *scope.Scope) (*mdwast.Compound, error) {
	p.logger.Debug("Starting parse", mdwlog.Fields{
		"param_mode":  p.options.Params.String(),
		"require_eof": p.options.RequireEOF,
	})

	root, err := p.ParseStatements(s)
	if err != nil {
		p.logger.Debug("Parse failed", mdwlog.Fields{"error": err.Error()})
		return nil, err
	}

	if p.options.RequireEOF && p.current.Kind != token.EOF {
		err := p.unexpected(token.Semicolon, token.EOF)
		p.logger.Debug("Parse failed", mdwlog.Fields{"error": err.Error()})
		return nil, err
	}

	p.logger.Debug("Parse completed", mdwlog.Fields{
		"statements": len(root.Statements),
	})
	return root, nil
}

// ParseStatements parses one statement, then further statements for as
// long as a semicolon follows. A trailing semicolon before '}' or end of
// input ends the sequence.
func (p *Parser) ParseStatements(s *scope.Scope) (*mdwast.Compound, error) {
	compound := &mdwast.Compound{Pos: p.current.Pos, Scope: s}

	stmt, err := p.parseStatement(s)
	if err != nil {
		return nil, err
	}
	compound.Statements = append(compound.Statements, stmt)

	for p.current.Kind == token.Semicolon {
		if err := p.advance(token.Semicolon); err != nil {
			return nil, err
		}
		if p.current.Kind == token.RightBrace || p.current.Kind == token.EOF {
			break
		}

		stmt, err := p.parseStatement(s)
		if err != nil {
			return nil, err
		}
		compound.Statements = append(compound.Statements, stmt)
	}

	return compound, nil
}

// parseStatement accepts identifier-led statements only
func (p *Parser) parseStatement(s *scope.Scope) (mdwast.Node, error) {
	if p.current.Kind != token.Identifier {
		return nil, p.unexpected(token.Identifier)
	}
	return p.parseIdentifier(s)
}

// parseExpression parses a string literal or an identifier-led expression
func (p *Parser) parseExpression(s *scope.Scope) (mdwast.Node, error) {
	switch p.current.Kind {
	case token.String:
		return p.parseString(s)
	case token.Identifier:
		return p.parseIdentifier(s)
	default:
		return nil, p.unexpected(token.String, token.Identifier)
	}
}

// parseIdentifier dispatches on the class of the current identifier
func (p *Parser) parseIdentifier(s *scope.Scope) (mdwast.Node, error) {
	switch p.options.Keywords.Classify(p.current.Text) {
	case token.WordVar:
		return p.parseVariableDefinition(s)
	case token.WordFunction:
		return p.parseFunctionDefinition(s)
	default:
		return p.parseVariable(s)
	}
}

// parseVariableDefinition parses [var] NAME = expression. The keyword is
// optional so that parameter lists can use the bare form.
func (p *Parser) parseVariableDefinition(s *scope.Scope) (mdwast.Node, error) {
	pos := p.current.Pos

	if p.current.Kind == token.Identifier && p.classify() == token.WordVar {
		if err := p.advance(token.Identifier); err != nil {
			return nil, err
		}
	}

	name, err := p.definitionName()
	if err != nil {
		return nil, err
	}
	if err := p.advance(token.Equals); err != nil {
		return nil, err
	}

	value, err := p.parseExpression(s)
	if err != nil {
		return nil, err
	}

	return &mdwast.VariableDefinition{Name: name, Value: value, Pos: pos, Scope: s}, nil
}

// parseFunctionDefinition parses
// function NAME ( param {, param} ) { statements }
func (p *Parser) parseFunctionDefinition(s *scope.Scope) (mdwast.Node, error) {
	pos := p.current.Pos

	if err := p.advance(token.Identifier); err != nil {
		return nil, err
	}
	name, err := p.definitionName()
	if err != nil {
		return nil, err
	}
	if err := p.advance(token.LeftParen); err != nil {
		return nil, err
	}

	first, err := p.parseVariableDefinition(s)
	if err != nil {
		return nil, err
	}
	params := []mdwast.Node{first}

	for p.current.Kind == token.Comma {
		if err := p.advance(token.Comma); err != nil {
			return nil, err
		}

		var param mdwast.Node
		if p.options.Params == ParamStrict {
			param, err = p.parseVariableDefinition(s)
		} else {
			if p.current.Kind != token.Identifier {
				return nil, p.unexpected(token.Identifier)
			}
			param, err = p.parseVariable(s)
		}
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}

	if err := p.advance(token.RightParen); err != nil {
		return nil, err
	}
	if err := p.advance(token.LeftBrace); err != nil {
		return nil, err
	}

	body, err := p.ParseStatements(s)
	if err != nil {
		return nil, err
	}

	if err := p.advance(token.RightBrace); err != nil {
		return nil, err
	}

	return &mdwast.FunctionDefinition{Name: name, Params: params, Body: body, Pos: pos, Scope: s}, nil
}

// parseVariable parses NAME, NAME ( args ) or NAME = expression, deciding on
// the token after the name
func (p *Parser) parseVariable(s *scope.Scope) (mdwast.Node, error) {
	nameTok := p.current
	if err := p.advance(token.Identifier); err != nil {
		return nil, err
	}

	switch p.current.Kind {
	case token.LeftParen:
		if err := p.advance(token.LeftParen); err != nil {
			return nil, err
		}
		return p.parseFunctionCall(s, nameTok)
	case token.Equals:
		if p.options.Keywords.Classify(nameTok.Text) != token.WordName {
			return nil, &UnexpectedTokenError{Token: nameTok, Expected: []token.Kind{token.Identifier}}
		}
		if err := p.advance(token.Equals); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(s)
		if err != nil {
			return nil, err
		}
		return &mdwast.VariableDefinition{Name: nameTok.Text, Value: value, Pos: nameTok.Pos, Scope: s}, nil
	default:
		return &mdwast.Variable{Name: nameTok.Text, Pos: nameTok.Pos, Scope: s}, nil
	}
}

// parseFunctionCall parses the arguments after NAME (. At least one
// argument is required.
func (p *Parser) parseFunctionCall(s *scope.Scope, nameTok token.Token) (mdwast.Node, error) {
	first, err := p.parseExpression(s)
	if err != nil {
		return nil, err
	}
	args := []mdwast.Node{first}

	for p.current.Kind == token.Comma {
		if err := p.advance(token.Comma); err != nil {
			return nil, err
		}
		arg, err := p.parseExpression(s)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	if err := p.advance(token.RightParen); err != nil {
		return nil, err
	}

	return &mdwast.FunctionCall{Name: nameTok.Text, Args: args, Pos: nameTok.Pos, Scope: s}, nil
}

// parseString parses a string literal
func (p *Parser) parseString(s *scope.Scope) (mdwast.Node, error) {
	tok := p.current
	if err := p.advance(token.String); err != nil {
		return nil, err
	}
	return &mdwast.StringLiteral{Value: tok.Text, Pos: tok.Pos, Scope: s}, nil
}

// definitionName consumes the identifier naming a definition. Keywords are
// reserved and cannot name definitions.
func (p *Parser) definitionName() (string, error) {
	if p.current.Kind == token.Identifier && p.classify() != token.WordName {
		return "", p.unexpected(token.Identifier)
	}
	name := p.current.Text
	if err := p.advance(token.Identifier); err != nil {
		return "", err
	}
	return name, nil
}

// advance consumes the current token if it has the expected kind and pulls
// the next one; any other kind fails the parse
func (p *Parser) advance(kind token.Kind) error {
	if p.current.Kind != kind {
		return p.unexpected(kind)
	}

	if p.trace {
		p.logger.Trace("Consumed token", mdwlog.Fields{
			"kind": p.current.Kind.String(),
			"text": p.current.Text,
			"pos":  p.current.Pos.String(),
		})
	}

	p.current = p.src.Next()
	return nil
}

func (p *Parser) classify() token.WordClass {
	return p.options.Keywords.Classify(p.current.Text)
}

func (p *Parser) unexpected(expected ...token.Kind) *UnexpectedTokenError {
	return &UnexpectedTokenError{Token: p.current, Expected: expected}
}
