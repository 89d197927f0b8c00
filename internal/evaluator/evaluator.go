// Package evaluator runs user-authored default-value expressions in an
// isolated environment.
package evaluator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
)

// env exposes the allow-listed builtins available to expressions, on top of
// the expression language's own literals, arithmetic and functions like max
// and min.
func env() map[string]any {
	return map[string]any{
		"now": func() time.Time {
			return time.Now()
		},
		"today": func() time.Time {
			y, m, d := time.Now().Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		},
	}
}

// Evaluate runs src as a single expression and returns its value. Every
// failure path, including panics inside the expression runtime, is converted
// to an error; nothing escapes the boundary.
func Evaluate(src string) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("expression failed: %v", r)
		}
	}()

	if strings.TrimSpace(src) == "" {
		return nil, errors.New("empty expression")
	}

	out, err := expr.Eval(src, env())
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SafeEvaluate returns the expression's value, or fallback on any failure,
// discarding the error detail.
func SafeEvaluate(src string, fallback any) any {
	value, err := Evaluate(src)
	if err != nil {
		return fallback
	}
	return value
}

// Check compiles src without running it, for validating stored expressions
func Check(src string) error {
	if strings.TrimSpace(src) == "" {
		return errors.New("empty expression")
	}
	_, err := expr.Compile(src, expr.Env(env()))
	return err
}
