package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (including contextual keywords).
	Ident

	// Literals.

	NumberLit
	StringLit
	// RegexLit is a regular expression literal including flags.
	RegexLit
	// TemplateFull is a template literal without substitutions.
	TemplateFull
	// TemplateHead opens a template literal with substitutions: `...${
	TemplateHead
	// TemplateMiddle continues between substitutions: }...${
	TemplateMiddle
	// TemplateTail closes a template literal: }...`
	TemplateTail

	// Reserved words.

	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwExport
	KwExtends
	KwFalse
	KwFinally
	KwFor
	KwFunction
	KwIf
	KwImport
	KwIn
	KwInstanceof
	KwInterface
	KwLet
	KwNew
	KwNull
	KwReturn
	KwStatic
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwVar
	KwVoid
	KwWhile

	// Punctuation and operators.

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Ellipsis  // ...
	QuestionDot // ?.
	Question  // ?
	Colon     // :
	Arrow     // =>

	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	PowAssign     // **=
	AndAndAssign  // &&=
	OrOrAssign    // ||=
	CoalesceAssign // ??=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=
	UShrAssign    // >>>=

	EqEq       // ==
	NotEq      // !=
	EqEqEq     // ===
	NotEqEq    // !==
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Pow        // **
	Amp        // &
	Pipe       // |
	Caret      // ^
	Tilde      // ~
	Shl        // <<
	Shr        // >>
	UShr       // >>>
	AndAnd     // &&
	OrOr       // ||
	Coalesce   // ??
	Bang       // !
	PlusPlus   // ++
	MinusMinus // --
)

var kindNames = map[Kind]string{
	Invalid: "invalid", EOF: "eof", Ident: "ident",
	NumberLit: "number", StringLit: "string", RegexLit: "regex",
	TemplateFull: "template", TemplateHead: "template-head",
	TemplateMiddle: "template-middle", TemplateTail: "template-tail",
	KwBreak: "break", KwCase: "case", KwCatch: "catch", KwClass: "class",
	KwConst: "const", KwContinue: "continue", KwDefault: "default",
	KwDelete: "delete", KwDo: "do", KwElse: "else", KwExport: "export",
	KwExtends: "extends", KwFalse: "false", KwFinally: "finally", KwFor: "for",
	KwFunction: "function", KwIf: "if", KwImport: "import", KwIn: "in",
	KwInstanceof: "instanceof", KwInterface: "interface", KwLet: "let",
	KwNew: "new", KwNull: "null", KwReturn: "return", KwStatic: "static",
	KwSuper: "super", KwSwitch: "switch", KwThis: "this", KwThrow: "throw",
	KwTrue: "true", KwTry: "try", KwTypeof: "typeof", KwVar: "var",
	KwVoid: "void", KwWhile: "while",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Semicolon: ";", Comma: ",", Dot: ".",
	Ellipsis: "...", QuestionDot: "?.", Question: "?", Colon: ":", Arrow: "=>",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=",
	SlashAssign: "/=", PercentAssign: "%=", PowAssign: "**=",
	AndAndAssign: "&&=", OrOrAssign: "||=", CoalesceAssign: "??=",
	AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	ShlAssign: "<<=", ShrAssign: ">>=", UShrAssign: ">>>=",
	EqEq: "==", NotEq: "!=", EqEqEq: "===", NotEqEq: "!==",
	Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Pow: "**",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~",
	Shl: "<<", Shr: ">>", UShr: ">>>",
	AndAnd: "&&", OrOr: "||", Coalesce: "??", Bang: "!",
	PlusPlus: "++", MinusMinus: "--",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
