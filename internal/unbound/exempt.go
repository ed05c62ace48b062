package unbound

// Таблица исключений: члены платформенных пространств имён, реализация
// которых не зависит от приёмника. Список вычислен заранее и вшит как
// константа, вместо интроспекции живой среды исполнения.
//
// Формат — namespace -> function-valued members без ведущего подчёркивания.
var exemptNamespaces = map[string][]string{
	"Array":  {"from", "fromAsync", "isArray", "of"},
	"Atomics": {
		"add", "and", "compareExchange", "exchange", "isLockFree", "load",
		"notify", "or", "store", "sub", "wait", "waitAsync", "xor",
	},
	"Date": {"now", "parse", "UTC"},
	"Intl": {"getCanonicalLocales", "supportedValuesOf"},
	"JSON": {"parse", "stringify"},
	"Math": {
		"abs", "acos", "acosh", "asin", "asinh", "atan", "atan2", "atanh",
		"cbrt", "ceil", "clz32", "cos", "cosh", "exp", "expm1", "floor",
		"fround", "hypot", "imul", "log", "log10", "log1p", "log2", "max",
		"min", "pow", "random", "round", "sign", "sin", "sinh", "sqrt",
		"tan", "tanh", "trunc",
	},
	"Number": {
		"isFinite", "isInteger", "isNaN", "isSafeInteger", "parseFloat",
		"parseInt",
	},
	"Object": {
		"assign", "create", "defineProperties", "defineProperty", "entries",
		"freeze", "fromEntries", "getOwnPropertyDescriptor",
		"getOwnPropertyDescriptors", "getOwnPropertyNames",
		"getOwnPropertySymbols", "getPrototypeOf", "groupBy", "is",
		"isExtensible", "isFrozen", "isSealed", "keys", "preventExtensions",
		"seal", "setPrototypeOf", "values",
	},
	"Promise": {"all", "allSettled", "any", "race", "reject", "resolve"},
	"Proxy":   {"revocable"},
	"Reflect": {
		"apply", "construct", "defineProperty", "deleteProperty", "get",
		"getOwnPropertyDescriptor", "getPrototypeOf", "has", "isExtensible",
		"ownKeys", "preventExtensions", "set", "setPrototypeOf",
	},
	"String": {"fromCharCode", "fromCodePoint", "raw"},
	"Symbol": {"for", "keyFor"},
	"console": {
		"assert", "clear", "count", "countReset", "debug", "dir", "dirxml",
		"error", "group", "groupCollapsed", "groupEnd", "info", "log",
		"table", "time", "timeEnd", "timeLog", "trace", "warn",
	},
}

// Члены, проходящие проверку формы, но всё же чувствительные к приёмнику:
// комбинаторы промисов и рефлексивные get/set с явным аргументом-приёмником.
var exemptDeny = []string{
	"Promise.all",
	"Promise.allSettled",
	"Promise.any",
	"Promise.race",
	"Promise.reject",
	"Promise.resolve",
	"Reflect.get",
	"Reflect.set",
}

// exemptTable строится один раз и после этого только читается, поэтому
// делится между параллельно анализируемыми файлами без блокировок.
var exemptTable = buildExemptTable()

func buildExemptTable() map[string]struct{} {
	t := make(map[string]struct{}, 128)
	for ns, members := range exemptNamespaces {
		for _, m := range members {
			t[ns+"."+m] = struct{}{}
		}
	}
	for _, q := range exemptDeny {
		delete(t, q)
	}
	return t
}

// Exempt reports whether the dotted name `Namespace.member` is a platform
// built-in safe to detach from its receiver.
func Exempt(qualified string) bool {
	_, ok := exemptTable[qualified]
	return ok
}
