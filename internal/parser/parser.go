package parser

import (
	"fmt"
	"strconv"

	"tacc/internal/ast"
	"tacc/internal/ir"
	"tacc/internal/lexer"
)

const (
	_ int = iota
	LOWEST
	LOGIC_OR
	LOGIC_AND
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	PREFIX
	CALL
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:       LOGIC_OR,
	lexer.AND:      LOGIC_AND,
	lexer.EQ:       EQUALS,
	lexer.NOT_EQ:   EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.LE:       LESSGREATER,
	lexer.GE:       LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.MOD:      PRODUCT,
	lexer.LPAREN:   CALL,
}

var binOps = map[lexer.TokenType]ir.BinOp{
	lexer.PLUS:     ir.Add,
	lexer.MINUS:    ir.Sub,
	lexer.ASTERISK: ir.Mul,
	lexer.SLASH:    ir.Div,
	lexer.MOD:      ir.Mod,
	lexer.EQ:       ir.Eq,
	lexer.NOT_EQ:   ir.Ne,
	lexer.LT:       ir.Lt,
	lexer.GT:       ir.Gt,
	lexer.LE:       ir.Le,
	lexer.GE:       ir.Ge,
	lexer.AND:      ir.And,
	lexer.OR:       ir.Or,
}

type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []string

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: make(map[lexer.TokenType]prefixParseFn),
		infixParseFns:  make(map[lexer.TokenType]infixParseFn),
	}

	p.prefixParseFns[lexer.IDENT] = p.parseIdentifier
	p.prefixParseFns[lexer.INT] = p.parseIntegerLiteral
	p.prefixParseFns[lexer.TRUE] = p.parseBoolean
	p.prefixParseFns[lexer.FALSE] = p.parseBoolean
	p.prefixParseFns[lexer.MINUS] = p.parsePrefixExpression
	p.prefixParseFns[lexer.BANG] = p.parsePrefixExpression
	p.prefixParseFns[lexer.LPAREN] = p.parseGroupedExpression

	for tok := range binOps {
		p.infixParseFns[tok] = p.parseInfixExpression
	}
	p.infixParseFns[lexer.LPAREN] = p.parseCallExpression

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for p.curToken.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.INT_KW, lexer.BOOL_KW:
		return p.parseDeclStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.PRINT:
		return p.parsePrintStatement()
	case lexer.LBRACE:
		return p.parseBlockStatement()
	default:
		if p.curToken.Type == lexer.IDENT && p.peekToken.Type == lexer.ASSIGN {
			return p.parseAssignStatement()
		}
		return p.parseExpressionStatement()
	}
}

// synchronize skips to the next statement boundary after a parse error.
func (p *Parser) synchronize() {
	for p.curToken.Type != lexer.SEMICOLON &&
		p.curToken.Type != lexer.RBRACE &&
		p.curToken.Type != lexer.EOF {
		p.nextToken()
	}
}

func (p *Parser) parseDeclStatement() ast.Statement {
	stmt := &ast.DeclStmt{Line: p.curToken.Line}
	if p.curToken.Type == lexer.BOOL_KW {
		stmt.DeclType = ir.Bool
	} else {
		stmt.DeclType = ir.Int
	}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal

	if p.peekToken.Type == lexer.ASSIGN {
		p.nextToken()
		p.nextToken()
		stmt.Initializer = p.parseExpression(LOWEST)
		if stmt.Initializer == nil {
			return nil
		}
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseAssignStatement() ast.Statement {
	stmt := &ast.AssignStmt{Name: p.curToken.Literal, Line: p.curToken.Line}

	p.nextToken() // =
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStmt{Line: p.curToken.Line}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	stmt.ThenBranch = p.parseBody()

	if p.peekToken.Type == lexer.ELSE {
		p.nextToken()
		stmt.ElseBranch = p.parseBody()
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStmt{Line: p.curToken.Line}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	stmt.Body = p.parseBody()
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStmt{Line: p.curToken.Line}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}

	// init clause; its parser consumes the first semicolon
	if p.peekToken.Type == lexer.SEMICOLON {
		p.nextToken()
	} else {
		p.nextToken()
		stmt.Init = p.parseStatement()
		if stmt.Init == nil {
			return nil
		}
	}

	// condition clause; absent means an infinite loop
	if p.peekToken.Type == lexer.SEMICOLON {
		p.nextToken()
	} else {
		p.nextToken()
		stmt.Condition = p.parseExpression(LOWEST)
		if stmt.Condition == nil {
			return nil
		}
		if !p.expectPeek(lexer.SEMICOLON) {
			return nil
		}
	}

	// update clause; its value is discarded at runtime
	if p.peekToken.Type == lexer.RPAREN {
		p.nextToken()
	} else {
		p.nextToken()
		stmt.Update = p.parseExpression(LOWEST)
		if stmt.Update == nil {
			return nil
		}
		if p.peekToken.Type == lexer.ASSIGN {
			p.errors = append(p.errors, fmt.Sprintf(
				"line %d: assignment is a statement and cannot appear in a for update clause",
				p.peekToken.Line))
			return nil
		}
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
	}

	stmt.Body = p.parseBody()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStmt{Line: p.curToken.Line}

	if p.peekToken.Type == lexer.SEMICOLON {
		p.nextToken()
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStmt{Line: p.curToken.Line}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseBlockStatement() ast.Statement {
	block := &ast.BlockStmt{Line: p.curToken.Line}

	p.nextToken()
	for p.curToken.Type != lexer.RBRACE && p.curToken.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.synchronize()
			if p.curToken.Type == lexer.RBRACE {
				break
			}
		}
		p.nextToken()
	}
	if p.curToken.Type == lexer.EOF {
		p.errors = append(p.errors,
			fmt.Sprintf("line %d: expected } to close the block opened on line %d",
				p.curToken.Line, block.Line))
	}
	return block
}

// parseBody parses a braced block or a single statement as a statement list.
func (p *Parser) parseBody() []ast.Statement {
	if p.peekToken.Type == lexer.LBRACE {
		p.nextToken()
		block := p.parseBlockStatement().(*ast.BlockStmt)
		return block.Statements
	}

	p.nextToken()
	stmt := p.parseStatement()
	if stmt == nil {
		p.synchronize()
		return nil
	}
	return []ast.Statement{stmt}
}

// A bare expression statement has no effect in this language; the
// expression is parsed for syntax and dropped, leaving an empty block.
func (p *Parser) parseExpressionStatement() ast.Statement {
	line := p.curToken.Line

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return &ast.BlockStmt{Line: line}
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && p.peekToken.Type != lexer.SEMICOLON && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.VarExpr{Name: p.curToken.Literal, Line: p.curToken.Line}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.Atoi(p.curToken.Literal)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("could not parse %q as integer", p.curToken.Literal))
		return nil
	}
	return &ast.ConstExpr{Value: value, Type: ir.Int, Line: p.curToken.Line}
}

func (p *Parser) parseBoolean() ast.Expression {
	value := 0
	if p.curToken.Type == lexer.TRUE {
		value = 1
	}
	return &ast.ConstExpr{Value: value, Type: ir.Bool, Line: p.curToken.Line}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.UnExpr{Line: p.curToken.Line}
	if p.curToken.Type == lexer.BANG {
		expr.Op = ir.Not
	} else {
		expr.Op = ir.Neg
	}

	p.nextToken()
	expr.Operand = p.parseExpression(PREFIX)
	if expr.Operand == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinExpr{
		Left: left,
		Op:   binOps[p.curToken.Type],
		Line: p.curToken.Line,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	varExp, ok := function.(*ast.VarExpr)
	if !ok {
		p.errors = append(p.errors, "expected function name before '('")
		return nil
	}

	call := &ast.CallExpr{Func: varExp.Name, Line: p.curToken.Line}
	call.Args = p.parseExpressionList(lexer.RPAREN)
	return call
}

func (p *Parser) parseExpressionList(end lexer.TokenType) []ast.Expression {
	list := []ast.Expression{}

	if p.peekToken.Type == end {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekToken.Type == lexer.COMMA {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) noPrefixParseFnError(t lexer.TokenType) {
	msg := fmt.Sprintf("line %d: unexpected token %s in expression", p.curToken.Line, t)
	p.errors = append(p.errors, msg)
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t lexer.TokenType) {
	msg := fmt.Sprintf("line %d: expected next token to be %s, got %s instead",
		p.peekToken.Line, t, p.peekToken.Type)
	p.errors = append(p.errors, msg)
}
