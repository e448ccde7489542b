package syntax

import "fmt"

// Kind identifies the type of a syntax node.
type Kind uint8

const (
	KindError Kind = iota
	KindDocument
	KindComment
	KindSimpleLine
	KindArgument
	KindInputLine
	KindInputBlock
	KindInputTitle
	KindKeyValuePair
	KindKey
	KindValue
	KindBraceBlock
	KindSubblock
	KindVariableDef
	KindVariableArray
	KindVariableRange
	KindGeometryBlock
	KindGeometryLine
	KindCoordinateLine
	KindCoordinateValue
	KindElement
	KindInteger
	KindWord
	KindFile
	KindCompoundScript
	KindCompoundVariableDeclaration
	KindCompoundDeclarator
	KindCompoundAssignment
	KindCompoundArrayAssignment
	KindCompoundForLoop
	KindCompoundIfBlock
	KindCompoundBlock
	KindCompoundFunctionCall
	KindCompoundExpression
	KindCompoundCondition
	KindCompoundStepBlock
	KindOperator
	kindCount
)

var kindNames = [...]string{
	KindError:                       "error",
	KindDocument:                    "document",
	KindComment:                     "comment",
	KindSimpleLine:                  "simple_line",
	KindArgument:                    "argument",
	KindInputLine:                   "input_line",
	KindInputBlock:                  "input_block",
	KindInputTitle:                  "input_title",
	KindKeyValuePair:                "key_value_pair",
	KindKey:                         "key",
	KindValue:                       "value",
	KindBraceBlock:                  "brace_block",
	KindSubblock:                    "subblock",
	KindVariableDef:                 "variable_def",
	KindVariableArray:               "variable_array",
	KindVariableRange:               "variable_range",
	KindGeometryBlock:               "geometry_block",
	KindGeometryLine:                "geometry_line",
	KindCoordinateLine:              "coordinate_line",
	KindCoordinateValue:             "coordinate_value",
	KindElement:                     "element",
	KindInteger:                     "integer",
	KindWord:                        "word",
	KindFile:                        "file",
	KindCompoundScript:              "compound_script",
	KindCompoundVariableDeclaration: "compound_variable_declaration",
	KindCompoundDeclarator:          "compound_declarator",
	KindCompoundAssignment:          "compound_assignment",
	KindCompoundArrayAssignment:     "compound_array_assignment",
	KindCompoundForLoop:             "compound_for_loop",
	KindCompoundIfBlock:             "compound_if_block",
	KindCompoundBlock:               "compound_block",
	KindCompoundFunctionCall:        "compound_function_call",
	KindCompoundExpression:          "compound_expression",
	KindCompoundCondition:           "compound_condition",
	KindCompoundStepBlock:           "compound_step_block",
	KindOperator:                    "operator",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// KindByName looks a kind up by its snake_case name.
func KindByName(name string) (Kind, bool) {
	for k := Kind(0); k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return 0, false
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		ks = append(ks, k)
	}
	return ks
}

// Variants used as node discriminants.
const (
	// coordinate lines and subblock bodies
	VariantXYZ       = "xyz"
	VariantInternal  = "internal"
	VariantZMatrix   = "zmatrix"
	VariantZMat1     = "zmat1"
	VariantZMat2     = "zmat2"
	VariantZMat3     = "zmat3"
	VariantZMat4     = "zmat4"
	VariantBody      = "body"
	VariantEmpty     = "empty"
	VariantAmbiguous = "ambiguous"

	// values and coordinate values
	VariantFloat        = "float"
	VariantIntegerValue = "integer"
	VariantQuoted       = "quoted_string"
	VariantString       = "string"
	VariantWord         = "word"
	VariantArray        = "array"
	VariantBrace        = "brace"
	VariantVariableRef  = "variable_ref"
	VariantCompoundRef  = "compound_ref"

	// variable definitions
	VariantScalar = "scalar"
	VariantRange  = "range"

	// compound expressions
	VariantLiteral     = "literal"
	VariantVariable    = "variable"
	VariantArrayAccess = "array_access"
	VariantBinary      = "binary"
	VariantParen       = "paren"

	// compound conditions
	VariantComparison = "comparison"
	VariantLogical    = "logical"
	VariantGroup      = "group"

	// compound assignments
	VariantRead = "read"
)
