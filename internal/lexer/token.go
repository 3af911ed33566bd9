package lexer

type TokenType int

const (
	EOF TokenType = iota
	ILLEGAL
	IDENT
	INT
	ASSIGN
	PLUS
	MINUS
	ASTERISK
	SLASH
	MOD
	BANG
	EQ
	NOT_EQ
	LT
	GT
	LE
	GE
	AND
	OR
	COMMA
	SEMICOLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	INT_KW
	BOOL_KW
	TRUE
	FALSE
	IF
	ELSE
	WHILE
	FOR
	RETURN
	PRINT
)

var keywords = map[string]TokenType{
	"int":    INT_KW,
	"bool":   BOOL_KW,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"return": RETURN,
	"print":  PRINT,
}

var tokenNames = map[TokenType]string{
	EOF:       "EOF",
	ILLEGAL:   "ILLEGAL",
	IDENT:     "IDENT",
	INT:       "INT",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	ASTERISK:  "*",
	SLASH:     "/",
	MOD:       "%",
	BANG:      "!",
	EQ:        "==",
	NOT_EQ:    "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	AND:       "&&",
	OR:        "||",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	INT_KW:    "int",
	BOOL_KW:   "bool",
	TRUE:      "true",
	FALSE:     "false",
	IF:        "if",
	ELSE:      "else",
	WHILE:     "while",
	FOR:       "for",
	RETURN:    "return",
	PRINT:     "print",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// LookupIdent maps identifiers that are keywords to their token type.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
