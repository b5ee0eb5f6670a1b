package check

// builtin describes one builtin function's arity shape and return kind.
// minArgs/maxArgs bound the call; maxArgs < 0 means unbounded (print).
type builtin struct {
	minArgs, maxArgs int
	ret              Kind
}

var builtins = map[string]builtin{
	"print": {minArgs: 0, maxArgs: -1, ret: KindVoid},
	"input": {minArgs: 0, maxArgs: 1, ret: KindStr},
	"len":   {minArgs: 1, maxArgs: 1, ret: KindInt},
	"int":   {minArgs: 1, maxArgs: 1, ret: KindInt},
	"float": {minArgs: 1, maxArgs: 1, ret: KindFloat},
	"str":   {minArgs: 1, maxArgs: 1, ret: KindStr},
	"bool":  {minArgs: 1, maxArgs: 1, ret: KindBool},
	"range": {minArgs: 1, maxArgs: 3, ret: KindList},
}
