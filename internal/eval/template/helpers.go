package template

// builtinHelpers returns the helpers every engine starts with
func builtinHelpers() map[string]HelperFunc {
	return map[string]HelperFunc{
		// control
		"var":     helperVar,
		"each":    helperEach,
		"loop":    helperLoop,
		"if":      helperIf,
		"unless":  helperUnless,
		"with":    helperWith,
		"default": helperDefault,
		"compare": helperCompare,

		// string
		"uppercase":     helperUppercase,
		"upperCase":     helperUppercase,
		"lowercase":     helperLowercase,
		"lowerCase":     helperLowercase,
		"capitalize":    helperCapitalize,
		"toTitleCase":   helperTitleCase,
		"trim":          helperTrim,
		"substring":     helperSubstring,
		"concat":        helperConcat,
		"replace":       helperReplace,
		"split":         helperSplit,
		"join":          helperJoin,
		"contains":      helperContains,
		"length":        helperLength,
		"startsWith":    helperStartsWith,
		"endsWith":      helperEndsWith,
		"reverseString": helperReverseString,
		"isEmpty":       helperIsEmpty,
		"repeat":        helperRepeat,
		"snakeToCamel":  helperSnakeToCamel,
		"camelToSnake":  helperCamelToSnake,

		// math
		"add":      helperAdd,
		"subtract": helperSubtract,
		"multiply": helperMultiply,
		"divide":   helperDivide,
		"modulo":   helperModulo,
		"max":      helperMax,
		"min":      helperMin,
		"round":    helperRound,
		"floor":    helperFloor,
		"ceil":     helperCeil,
		"abs":      helperAbs,

		// logic
		"and": helperAnd,
		"or":  helperOr,
		"not": helperNot,
		"eq":  comparison("=="),
		"ne":  comparison("!="),
		"gt":  comparison(">"),
		"gte": comparison(">="),
		"lt":  comparison("<"),
		"lte": comparison("<="),

		// array
		"arrayLength":      helperArrayLength,
		"arrayIncludes":    helperArrayIncludes,
		"arrayJoin":        helperJoin,
		"uniqueArray":      helperUniqueArray,
		"removeDuplicates": helperUniqueArray,
		"flattenArray":     helperFlattenArray,
		"chunkArray":       helperChunkArray,
		"shuffleArray":     helperShuffleArray,
		"arrayMap":         helperArrayMap,
		"arraySort":        helperArraySort,
		"first":            helperFirst,
		"last":             helperLast,

		// object
		"objectKeys":      helperObjectKeys,
		"objectValues":    helperObjectValues,
		"objectEntries":   helperObjectEntries,
		"objectHasKey":    helperObjectHasKey,
		"mergeObjects":    helperMergeObjects,
		"deepClone":       helperDeepClone,
		"objectFreeze":    helperDeepClone,
		"objectMergeDeep": helperObjectMergeDeep,
		"objectMap":       helperObjectMap,

		// date
		"getCurrentDate": helperCurrentDate,
		"getCurrentTime": helperCurrentTime,
		"formatDate":     helperFormatDate,

		// random
		"randomNumber":  helperRandomNumber,
		"randomElement": helperRandomElement,

		// formatting
		"currency": helperCurrency,
		"percent":  helperPercent,

		// misc
		"jsonStringify": helperJSONStringify,
		"jsonParse":     helperJSONParse,
		"delay":         helperDelay,
		"noop":          helperNoop,
		"deepEqual":     helperDeepEqual,
	}
}
