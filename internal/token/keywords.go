package token

var keywords = map[string]Kind{
	"int":    KwInt,
	"byte":   KwByte,
	"bool":   KwBool,
	"void":   KwVoid,
	"string": KwString,
	"array":  KwArray,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"return": KwReturn,
	"read":   KwRead,
	"write":  KwWrite,
	"havoc":  KwHavoc,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword reports whether ident names a keyword, and its Kind if so.
// Keywords are case-sensitive; only the lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
