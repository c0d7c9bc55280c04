package launcher

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"lookout/internal/domain"
	lkerrors "lookout/internal/errors"
)

// calcChars is everything an arithmetic query may contain. Anything else
// (names, strings, builtins) is not a calculation.
const calcChars = "0123456789.+-*/^() "

func queryCalc(l *Launcher, query string) ([]*domain.ResultItem, error) {
	text := strings.TrimSpace(query)
	if !IsArithmetic(text) {
		return nil, lkerrors.ErrNoMatch
	}
	value, err := Evaluate(text)
	if err != nil {
		return nil, lkerrors.Provider("Not An Expression", text, err)
	}
	result := strconv.FormatFloat(value, 'f', -1, 64)
	attrs := domain.NewAttributes(
		"method", "copy",
		"result", result,
	)
	return []*domain.ResultItem{
		l.newItem(float64(l.Priority), result, text, "", attrs),
	}, nil
}

// IsArithmetic reports whether text looks like a calculation: only
// numbers, operators and parentheses, with at least one operator
func IsArithmetic(text string) bool {
	if text == "" || !strings.ContainsAny(text, "+-*/^") {
		return false
	}
	for _, r := range text {
		if !strings.ContainsRune(calcChars, r) {
			return false
		}
	}
	return true
}

// Evaluate computes an arithmetic expression with + - * / ^ and parentheses
func Evaluate(text string) (float64, error) {
	if !IsArithmetic(text) {
		return 0, fmt.Errorf("%q is not arithmetic", text)
	}
	program, err := expr.Compile(text)
	if err != nil {
		return 0, err
	}
	out, err := expr.Run(program, nil)
	if err != nil {
		return 0, err
	}

	var v float64
	switch n := out.(type) {
	case int:
		v = float64(n)
	case float64:
		v = n
	default:
		return 0, fmt.Errorf("result %v is not a number", out)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("result is not a number")
	}
	return v, nil
}
