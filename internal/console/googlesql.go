package console

import (
	"strconv"
	"strings"

	"github.com/cloudspannerecosystem/memefish"
	"github.com/cloudspannerecosystem/memefish/ast"

	"github.com/apstndb/namedvars/parser"
)

// literalText converts the right-hand side of SET into the text handed to the
// variable's parser. GoogleSQL literals are unwrapped ('a b' becomes a b,
// TRUE becomes true, NULL becomes NULL, 0x10 becomes 16); anything else,
// including bare identifiers, is passed through unchanged.
func literalText(value string) (result string) {
	value = strings.TrimSpace(value)

	// memefish panics on some malformed input such as unclosed string literals.
	defer func() {
		if r := recover(); r != nil {
			result = value
		}
	}()

	expr, err := memefish.ParseExpr("", value)
	if err != nil {
		return value
	}

	switch lit := expr.(type) {
	case *ast.StringLiteral:
		return lit.Value
	case *ast.BytesLiteral:
		return string(lit.Value)
	case *ast.BoolLiteral:
		return strconv.FormatBool(lit.Value)
	case *ast.NullLiteral:
		return parser.Null
	case *ast.IntLiteral:
		if lit.Base != 16 {
			return value
		}
		return hexToDecimal(lit.Value, value)
	default:
		return value
	}
}

// hexToDecimal converts a GoogleSQL hex literal such as 0x1F or -0x1F to
// decimal text, or returns fallback when it does not fit in 64 bits.
func hexToDecimal(lit, fallback string) string {
	neg := strings.HasPrefix(lit, "-")
	digits := strings.TrimPrefix(lit, "-")
	digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")

	n, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return fallback
	}
	if neg {
		return "-" + strconv.FormatUint(n, 10)
	}
	return strconv.FormatUint(n, 10)
}
