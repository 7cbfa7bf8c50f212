package diag

// Code identifies one member of the closed semantic-error set a type-check
// pass can report. The names mirror the source project's error-reporting
// method names so the correspondence is traceable.
type Code uint8

const (
	CodeNone Code = iota
	CodeUndeclID
	CodeMultiDecl
	CodeBadVarType
	CodeMathOpd
	CodeLogicOpd
	CodeRelOpd
	CodeEqOpd
	CodeEqOpr
	CodeAssignOpd
	CodeAssignOpr
	CodeArrayID
	CodeArrayIndex
	CodeCallee
	CodeArgCount
	CodeArgMatch
	CodeRetEmpty
	CodeRetWrong
	CodeExtraRetValue
	CodeIfCond
	CodeWhileCond
	CodeReadFn
	CodeReadOther
	CodeWriteFn
	CodeWriteVoid
	CodeWriteArray

	// The remaining codes are lexical, not semantic: they belong to the
	// lexer's supplementary diagnostics rather than the core closed set
	// type analysis reports from.
	CodeIllegalChar
	CodeStrEsc
	CodeStrUnterm
	CodeStrEscAndUnterm
	CodeIntOverflow

	// CodeSyntaxError covers every parse failure. The source project's own
	// grammar reports a single undifferentiated "syntax error" on failure
	// (main.cpp just prints "Parse failed" and exits nonzero), so this
	// front end's parser does the same rather than inventing a taxonomy of
	// syntax-error kinds with no grounding.
	CodeSyntaxError
)

// messages holds the exact wording for each code, ground-truthed against
// the source project's reporting methods.
var messages = map[Code]string{
	CodeUndeclID:      "Undeclared identifier",
	CodeMultiDecl:     "Multiply declared identifier",
	CodeBadVarType:    "Invalid type in declaration",
	CodeMathOpd:       "Arithmetic operator applied to invalid operand",
	CodeLogicOpd:      "Logical operator applied to non-bool operand",
	CodeRelOpd:        "Relational operator applied to non-numeric operand",
	CodeEqOpd:         "Invalid equality operand",
	CodeEqOpr:         "Invalid equality operation",
	CodeAssignOpd:     "Invalid assignment operand",
	CodeAssignOpr:     "Invalid assignment operation",
	CodeArrayID:       "Attempt to index a non-array",
	CodeArrayIndex:    "Bad index type",
	CodeCallee:        "Attempt to call a non-function",
	CodeArgCount:      "Function call with wrong number of args",
	CodeArgMatch:      "Type of actual does not match type of formal",
	CodeRetEmpty:      "Missing return value",
	CodeRetWrong:      "Bad return value",
	CodeExtraRetValue: "Return with a value in void function",
	CodeIfCond:        "Non-bool expression used as an if condition",
	CodeWhileCond:     "Non-bool expression used as a while condition",
	CodeReadFn:        "Attempt to read a function",
	CodeReadOther:     "Attempt to read to illegal type",
	CodeWriteFn:       "Attempt to output a function",
	CodeWriteVoid:     "Attempt to write void",
	CodeWriteArray:    "Attempt to write array",

	CodeIllegalChar:     "Illegal character",
	CodeStrEsc:          "String literal with bad escape sequence ignored",
	CodeStrUnterm:       "Unterminated string literal ignored",
	CodeStrEscAndUnterm: "Unterminated string literal with bad escape sequence ignored",
	CodeIntOverflow:     "Integer literal too large; using max value",

	CodeSyntaxError: "Syntax error",
}

// Message returns the canonical wording for code.
func (c Code) Message() string {
	return messages[c]
}
