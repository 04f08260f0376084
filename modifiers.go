package kotlinpoet

import (
	"strconv"
	"strings"
)

// KModifier is a Kotlin declaration modifier. The numeric order of the
// constants is the canonical order in which modifiers are emitted.
type KModifier int

const (
	Public KModifier = iota
	Protected
	Private
	Internal
	Expect
	Actual
	Final
	Open
	Abstract
	Sealed
	Const
	External
	Override
	Lateinit
	Tailrec
	Vararg
	Suspend
	Inner
	Enum
	Annotation
	Value
	Fun
	Companion
	Inline
	Noinline
	Crossinline
	Reified
	Infix
	Operator
	Data
	In
	Out

	numModifiers
)

type modifierTarget int

const (
	targetClass modifierTarget = 1 << iota
	targetVariance
	targetParameter
	targetTypeParameter
	targetFunction
	targetProperty
	targetInterface
)

var modifierInfo = [numModifiers]struct {
	keyword string
	targets modifierTarget
}{
	Public:      {"public", targetProperty},
	Protected:   {"protected", targetProperty},
	Private:     {"private", targetProperty},
	Internal:    {"internal", targetProperty},
	Expect:      {"expect", targetClass | targetFunction | targetProperty},
	Actual:      {"actual", targetClass | targetFunction | targetProperty},
	Final:       {"final", targetClass | targetFunction | targetProperty},
	Open:        {"open", targetClass | targetFunction | targetProperty},
	Abstract:    {"abstract", targetClass | targetFunction | targetProperty},
	Sealed:      {"sealed", targetClass},
	Const:       {"const", targetProperty},
	External:    {"external", targetClass | targetFunction | targetProperty},
	Override:    {"override", targetFunction | targetProperty},
	Lateinit:    {"lateinit", targetProperty},
	Tailrec:     {"tailrec", targetFunction},
	Vararg:      {"vararg", targetParameter},
	Suspend:     {"suspend", targetFunction},
	Inner:       {"inner", targetClass},
	Enum:        {"enum", targetClass},
	Annotation:  {"annotation", targetClass},
	Value:       {"value", targetClass},
	Fun:         {"fun", targetInterface},
	Companion:   {"companion", targetClass},
	Inline:      {"inline", targetFunction},
	Noinline:    {"noinline", targetParameter},
	Crossinline: {"crossinline", targetParameter},
	Reified:     {"reified", targetTypeParameter},
	Infix:       {"infix", targetFunction},
	Operator:    {"operator", targetFunction},
	Data:        {"data", targetClass},
	In:          {"in", targetVariance},
	Out:         {"out", targetVariance},
}

// Keyword returns the modifier as written in source.
func (m KModifier) Keyword() string {
	if m < 0 || m >= numModifiers {
		return "KModifier(" + strconv.Itoa(int(m)) + ")"
	}
	return modifierInfo[m].keyword
}

func (m KModifier) String() string {
	return m.Keyword()
}

// ParseModifier returns the modifier written as keyword.
func ParseModifier(keyword string) (KModifier, bool) {
	for m := KModifier(0); m < numModifiers; m++ {
		if modifierInfo[m].keyword == keyword {
			return m, true
		}
	}
	return 0, false
}

func (m KModifier) valid() bool {
	return m >= 0 && m < numModifiers
}

// modifierSet is a set of modifiers. Iteration order is canonical order.
type modifierSet uint64

func newModifierSet(mods ...KModifier) modifierSet {
	var s modifierSet
	for _, m := range mods {
		s = s.with(m)
	}
	return s
}

func (s modifierSet) with(m KModifier) modifierSet {
	if !m.valid() {
		failf("invalid modifier %d", int(m))
	}
	return s | 1<<uint(m)
}

func (s modifierSet) without(m KModifier) modifierSet {
	return s &^ (1 << uint(m))
}

func (s modifierSet) union(o modifierSet) modifierSet {
	return s | o
}

func (s modifierSet) contains(m KModifier) bool {
	return s&(1<<uint(m)) != 0
}

func (s modifierSet) containsAny(mods ...KModifier) bool {
	for _, m := range mods {
		if s.contains(m) {
			return true
		}
	}
	return false
}

func (s modifierSet) isEmpty() bool {
	return s == 0
}

func (s modifierSet) list() []KModifier {
	var ret []KModifier
	for m := KModifier(0); m < numModifiers; m++ {
		if s.contains(m) {
			ret = append(ret, m)
		}
	}
	return ret
}

func (s modifierSet) String() string {
	var parts []string
	for _, m := range s.list() {
		parts = append(parts, m.Keyword())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

var visibilityModifiers = newModifierSet(Public, Internal, Protected, Private)

func checkModifierTarget(m KModifier, target modifierTarget, what string) {
	requiref(m.valid() && modifierInfo[m].targets&target != 0, "unexpected modifier %s for %s", m, what)
}

func requireNoneOrOneOf(s modifierSet, mutuallyExclusive ...KModifier) {
	count := 0
	for _, m := range mutuallyExclusive {
		if s.contains(m) {
			count++
		}
	}
	requiref(count <= 1, "modifiers %s must contain none or only one of %s", s, newModifierSet(mutuallyExclusive...))
}

func requireNoneOf(s modifierSet, forbidden ...KModifier) {
	for _, m := range forbidden {
		requiref(!s.contains(m), "modifiers %s must contain none of %s", s, newModifierSet(forbidden...))
	}
}

// KOperator is an overloadable Kotlin operator. A MemberName created with
// an operator emits the operator symbol instead of the function name.
type KOperator int

const (
	NoOperator KOperator = iota
	UnaryPlus
	Plus
	UnaryMinus
	Minus
	Times
	Div
	Rem
	PlusAssign
	MinusAssign
	TimesAssign
	DivAssign
	RemAssign
	Inc
	Dec
	Equals
	NotEquals
	Not
	RangeTo
	Contains
	NotContains
	GreaterThan
	LessThan
	GreaterOrEqual
	LessOrEqual
	Iterator

	numOperators
)

var operatorInfo = [numOperators]struct {
	symbol, functionName string
}{
	UnaryPlus:      {"+", "unaryPlus"},
	Plus:           {"+", "plus"},
	UnaryMinus:     {"-", "unaryMinus"},
	Minus:          {"-", "minus"},
	Times:          {"*", "times"},
	Div:            {"/", "div"},
	Rem:            {"%", "rem"},
	PlusAssign:     {"+=", "plusAssign"},
	MinusAssign:    {"-=", "minusAssign"},
	TimesAssign:    {"*=", "timesAssign"},
	DivAssign:      {"/=", "divAssign"},
	RemAssign:      {"%=", "remAssign"},
	Inc:            {"++", "inc"},
	Dec:            {"--", "dec"},
	Equals:         {"==", "equals"},
	NotEquals:      {"!=", "equals"},
	Not:            {"!", "not"},
	RangeTo:        {"..", "rangeTo"},
	Contains:       {"in", "contains"},
	NotContains:    {"!in", "contains"},
	GreaterThan:    {">", "compareTo"},
	LessThan:       {"<", "compareTo"},
	GreaterOrEqual: {">=", "compareTo"},
	LessOrEqual:    {"<=", "compareTo"},
	Iterator:       {"in", "iterator"},
}

// Symbol returns the operator as written at a use site, such as "+=".
func (o KOperator) Symbol() string {
	if o <= NoOperator || o >= numOperators {
		return ""
	}
	return operatorInfo[o].symbol
}

// FunctionName returns the name of the function that overloads the operator.
func (o KOperator) FunctionName() string {
	if o <= NoOperator || o >= numOperators {
		return ""
	}
	return operatorInfo[o].functionName
}
