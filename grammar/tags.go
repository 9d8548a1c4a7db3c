package grammar

import "fmt"

// Tag identifies the meaning of a reserved word. The lexeme that spells a tag
// comes from the keyword table; the parser only ever matches on tags.
type Tag uint8

const (
	TagNone Tag = iota

	// Symbols
	TagBlock        // opens a code block or an initializer
	TagParameter    // opens a call, condition list or bracketed expression
	TagEndOfBracket // closes anything opened by TagBlock or TagParameter
	TagSemicolon    // separates arguments, terminates statements
	TagAssign
	TagChar
	TagString
	TagComment
	TagGetElement
	TagLabel
	TagFnCallL
	TagFnCallR
	TagBracketR

	// Control flow
	TagIf
	TagElse
	TagRepeat
	TagSwitch
	TagJump
	TagReturn

	// Primitive types
	TagInteger
	TagFloat
	TagCharType
	TagBool
	TagComplex

	// Type decorators
	TagArray
	TagWidth
	TagSigned
	TagUnsigned
	TagReference
	TagRightReference
	TagConst
	TagPointer

	// Structure words
	TagClass
	TagEnum
	TagUnion
	TagStruct

	tagCount
)

// Class groups tags by the grammar position they may appear in.
type Class uint8

const (
	ClassNone Class = iota
	ClassSymbol
	ClassControlFlow
	ClassPrimitiveType
	ClassDecorator
	ClassStructure
)

var tagNames = [tagCount]string{
	TagNone: "none",

	TagBlock:        "block",
	TagParameter:    "parameter",
	TagEndOfBracket: "end_of_bracket",
	TagSemicolon:    "semicolon",
	TagAssign:       "assign",
	TagChar:         "char",
	TagString:       "string",
	TagComment:      "comment",
	TagGetElement:   "get_element",
	TagLabel:        "label",
	TagFnCallL:      "fn_call_l",
	TagFnCallR:      "fn_call_r",
	TagBracketR:     "bracket_r",

	TagIf:     "if",
	TagElse:   "else",
	TagRepeat: "repeat",
	TagSwitch: "switch",
	TagJump:   "jump",
	TagReturn: "return",

	TagInteger:  "integer",
	TagFloat:    "float",
	TagCharType: "char_type",
	TagBool:     "bool",
	TagComplex:  "complex",

	TagArray:          "array",
	TagWidth:          "width",
	TagSigned:         "signed",
	TagUnsigned:       "unsigned",
	TagReference:      "reference",
	TagRightReference: "right_reference",
	TagConst:          "const",
	TagPointer:        "pointer",

	TagClass:  "class",
	TagEnum:   "enum",
	TagUnion:  "union",
	TagStruct: "struct",
}

func (t Tag) String() string {
	if t < tagCount {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// Class returns the class a tag belongs to.
func (t Tag) Class() Class {
	switch {
	case t >= TagBlock && t <= TagBracketR:
		return ClassSymbol
	case t >= TagIf && t <= TagReturn:
		return ClassControlFlow
	case t >= TagInteger && t <= TagComplex:
		return ClassPrimitiveType
	case t >= TagArray && t <= TagPointer:
		return ClassDecorator
	case t >= TagClass && t <= TagStruct:
		return ClassStructure
	default:
		return ClassNone
	}
}

// TakesSize reports whether a decorator is followed by a number literal.
func (t Tag) TakesSize() bool {
	return t == TagArray || t == TagWidth
}

// ParseTag resolves a tag from its configuration name.
func ParseTag(name string) (Tag, error) {
	for i := TagBlock; i < tagCount; i++ {
		if tagNames[i] == name {
			return i, nil
		}
	}
	return TagNone, fmt.Errorf("unknown keyword tag %q", name)
}

func (c Class) String() string {
	switch c {
	case ClassSymbol:
		return "symbol"
	case ClassControlFlow:
		return "control-flow"
	case ClassPrimitiveType:
		return "primitive-type"
	case ClassDecorator:
		return "decorator"
	case ClassStructure:
		return "structure"
	default:
		return "none"
	}
}

// requiredTags must each be spelled by at least one lexeme, since the parser
// cannot recognize the productions that use them otherwise.
var requiredTags = []Tag{
	TagBlock, TagParameter, TagEndOfBracket, TagSemicolon, TagAssign,
	TagChar, TagString, TagComment,
	TagIf, TagElse, TagRepeat, TagReturn,
}
