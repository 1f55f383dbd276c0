package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Values exposes the current text of a field. A missing field reads as "".
type Values interface {
	Text(field string) string
}

// Map is a Values backed by plain strings, used for one-shot forms.
type Map map[string]string

func (m Map) Text(field string) string { return m[field] }

// Check is one constraint on a field value. Fails reports a violation.
type Check struct {
	Kind  ErrorKind
	Key   string
	Fails func(value string) bool
}

// Rule is the ordered list of checks for one field. Checks run in order and the
// first failing check is the field's verdict.
type Rule struct {
	Field  string
	Checks []Check

	// Optional rules are skipped entirely when the value is blank.
	Optional bool

	// When, if set, limits the rule to answer sets it returns true for.
	When func(v Values) bool
}

// Evaluate runs the rule against v.
func (r Rule) Evaluate(v Values) *FieldError {
	if r.When != nil && !r.When(v) {
		return nil
	}
	value := v.Text(r.Field)
	if r.Optional && isBlank(value) {
		return nil
	}
	for _, c := range r.Checks {
		if c.Fails(value) {
			return &FieldError{Field: r.Field, Kind: c.Kind, Key: c.Key}
		}
	}
	return nil
}

// Conditionally returns a copy of r gated by when. Required checks are retagged as
// ConditionallyRequired so callers can tell a branch-triggered requirement apart.
func (r Rule) Conditionally(when func(v Values) bool) Rule {
	checks := make([]Check, len(r.Checks))
	for i, c := range r.Checks {
		if c.Kind == KindRequired {
			c.Kind = KindConditionallyRequired
		}
		checks[i] = c
	}
	r.Checks = checks
	r.When = when
	r.Optional = false
	return r
}

// Apply evaluates rules in order and collects the first violation per field.
func Apply(rules []Rule, v Values) []FieldError {
	var out []FieldError
	seen := make(map[string]struct{})
	for _, r := range rules {
		if _, done := seen[r.Field]; done {
			continue
		}
		if fe := r.Evaluate(v); fe != nil {
			seen[r.Field] = struct{}{}
			out = append(out, *fe)
		}
	}
	return out
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// Required fails on a blank value.
func Required(key string) Check {
	return Check{Kind: KindRequired, Key: key, Fails: isBlank}
}

// RequiredAs fails on a blank value with a custom kind.
func RequiredAs(kind ErrorKind, key string) Check {
	return Check{Kind: kind, Key: key, Fails: isBlank}
}

// MinLength fails when the value has fewer than n characters.
func MinLength(n int, key string) Check {
	return Check{Kind: KindTooShort, Key: key, Fails: func(s string) bool {
		return utf8.RuneCountInString(strings.TrimSpace(s)) < n
	}}
}

// NoDigits fails when the value contains any decimal digit.
func NoDigits(key string) Check {
	return Check{Kind: KindForbiddenCharacter, Key: key, Fails: func(s string) bool {
		return strings.IndexFunc(s, unicode.IsDigit) >= 0
	}}
}

// HasDigit fails when the value contains no decimal digit.
func HasDigit(key string) Check {
	return Check{Kind: KindInvalidFormat, Key: key, Fails: func(s string) bool {
		return strings.IndexFunc(s, unicode.IsDigit) < 0
	}}
}

// Pattern fails when the value does not match re.
func Pattern(re *regexp.Regexp, key string) Check {
	return Check{Kind: KindInvalidFormat, Key: key, Fails: func(s string) bool {
		return !re.MatchString(s)
	}}
}

var validate = validator.New()

// Email fails unless the value is shaped like an email address.
func Email(key string) Check {
	return Check{Kind: KindInvalidFormat, Key: key, Fails: func(s string) bool {
		return validate.Var(strings.TrimSpace(s), "required,email") != nil
	}}
}

// OneOf fails unless the value is one of options.
func OneOf(key string, options ...string) Check {
	return Check{Kind: KindInvalidFormat, Key: key, Fails: func(s string) bool {
		for _, o := range options {
			if s == o {
				return false
			}
		}
		return true
	}}
}

// Numeric fails unless the value parses as a number.
func Numeric(key string) Check {
	return Check{Kind: KindInvalidFormat, Key: key, Fails: func(s string) bool {
		_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return err != nil
	}}
}
