package generator

import "regexp"

// Validator inspects a candidate argument value before it is stored.
// It is never called with nil.
type Validator func(value any) Outcome

// Outcome is the result of a Validator: either accepted with a (possibly
// transformed) value, or rejected with a message.
type Outcome struct {
	value    any
	message  string
	rejected bool
}

// Accept stores value as the argument's value.
func Accept(value any) Outcome {
	return Outcome{value: value}
}

// Reject fails the assignment with an *ArgumentError carrying message.
func Reject(message string) Outcome {
	return Outcome{message: message, rejected: true}
}

// Rejected reports whether the validator refused the value.
func (o Outcome) Rejected() bool { return o.rejected }

// Value is the accepted, possibly transformed, value.
func (o Outcome) Value() any { return o.value }

// Message explains a rejection.
func (o Outcome) Message() string { return o.message }

// Transform adapts a mapping function into a Validator that never rejects.
func Transform(fn func(any) any) Validator {
	return func(value any) Outcome {
		return Accept(fn(value))
	}
}

// Chain runs validators in order, feeding each accepted value to the next.
// The first rejection wins.
func Chain(validators ...Validator) Validator {
	return func(value any) Outcome {
		for _, v := range validators {
			if v == nil {
				continue
			}
			out := v(value)
			if out.rejected {
				return out
			}
			value = out.value
		}
		return Accept(value)
	}
}

// ArgumentDeclaration declares one positional argument of a generator.
type ArgumentDeclaration struct {
	Position int
	Name     string
	Desc     string
	Default  any
	Required bool
	Validate Validator
}

// ArgumentOption configures an ArgumentDeclaration.
type ArgumentOption func(*ArgumentDeclaration)

// Required makes the argument mandatory: it may never be nil.
func Required() ArgumentOption {
	return func(a *ArgumentDeclaration) { a.Required = true }
}

// WithDefault is used when no value is given at the argument's position.
func WithDefault(value any) ArgumentOption {
	return func(a *ArgumentDeclaration) { a.Default = value }
}

// WithValidator runs v on every non-nil assignment, including the initial bind.
func WithValidator(v Validator) ArgumentOption {
	return func(a *ArgumentDeclaration) { a.Validate = v }
}

// WithDesc sets the help text shown for the argument.
func WithDesc(desc string) ArgumentOption {
	return func(a *ArgumentDeclaration) { a.Desc = desc }
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether name can be used as an argument or option name.
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
