package manifest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/simonhull/firebird-suite/plume/generator"
	"github.com/simonhull/firebird-suite/plume/inflect"
)

var transforms = map[string]func(string) string{
	"snake":  inflect.Snake,
	"camel":  inflect.Camel,
	"pascal": inflect.Pascal,
	"kebab":  inflect.Kebab,
	"lower":  strings.ToLower,
	"upper":  strings.ToUpper,
	"plural": inflect.Pluralize,
}

func transformNames() []string {
	names := make([]string, 0, len(transforms))
	for name := range transforms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// newValidator turns a declarative validate block into a generator.Validator
// for the named argument. Values are checked in their string form.
func newValidator(argument string, spec *ValidateSpec) (generator.Validator, error) {
	var pattern *regexp.Regexp
	if spec.Pattern != "" {
		var err error
		if pattern, err = regexp.Compile(spec.Pattern); err != nil {
			return nil, fmt.Errorf("argument %s: %w", argument, err)
		}
	}

	var transform func(string) string
	if spec.Transform != "" {
		var ok bool
		if transform, ok = transforms[spec.Transform]; !ok {
			return nil, fmt.Errorf("argument %s: unknown transform %q", argument, spec.Transform)
		}
	}

	reject := func(format string, args ...any) generator.Outcome {
		if spec.Message != "" {
			return generator.Reject(spec.Message)
		}
		return generator.Reject(fmt.Sprintf(format, args...))
	}

	return func(value any) generator.Outcome {
		s := generator.Str(value)
		if pattern != nil && !pattern.MatchString(s) {
			return reject("%s %q does not match %s", argument, s, spec.Pattern)
		}
		if len(spec.OneOf) > 0 && !slices.Contains(spec.OneOf, s) {
			return reject("%s must be one of [%s], got %q", argument, strings.Join(spec.OneOf, ", "), s)
		}
		if transform != nil {
			return generator.Accept(transform(s))
		}
		return generator.Accept(value)
	}, nil
}
