package compiler

// DefaultReservedWords is the ECMAScript 2015 reserved-keyword list plus
// the strict-mode and module-mode additions, preserved from the
// original JavaScript-emitter target as external, overridable
// configuration: Options.ReservedWords defaults to this, and a plugin
// or caller may replace it outright.
var DefaultReservedWords = []string{
	"break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "export", "extends", "finally",
	"for", "function", "if", "import", "in", "instanceof", "new",
	"return", "super", "switch", "this", "throw", "try", "typeof", "var",
	"void", "while", "with",
	"null", "true", "false",
	"enum",
	"implements", "interface", "let", "package", "private", "protected",
	"public", "static", "yield",
	"await",
}
