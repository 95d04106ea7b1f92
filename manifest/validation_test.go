package manifest

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const header = "apiVersion: plume/v1\nkind: Generator\nname: gen\n"

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		manifest   string
		wantFields []string
	}{
		{
			name:     "minimal",
			manifest: header,
		},
		{
			name:       "missing header",
			manifest:   "spec: {}\n",
			wantFields: []string{"apiVersion", "kind", "name"},
		},
		{
			name:       "wrong api version",
			manifest:   "apiVersion: v1\nkind: Generator\nname: gen\n",
			wantFields: []string{"apiVersion"},
		},
		{
			name:       "bad generator name",
			manifest:   "apiVersion: plume/v1\nkind: Generator\nname: my-gen\n",
			wantFields: []string{"name"},
		},
		{
			name: "argument problems",
			manifest: header + `spec:
  arguments:
    - {position: 0, name: a}
    - {position: 0, name: b}
    - {position: 1, name: a}
    - {position: -1, name: c}
    - {position: 2, name: "bad name"}
`,
			wantFields: []string{
				"spec.arguments[1].position",
				"spec.arguments[2].name",
				"spec.arguments[3].position",
				"spec.arguments[4].name",
			},
		},
		{
			name: "validator problems",
			manifest: header + `spec:
  arguments:
    - position: 0
      name: a
      validate: {pattern: "(", transform: shout}
`,
			wantFields: []string{"spec.arguments[0].validate.pattern", "spec.arguments[0].validate.transform"},
		},
		{
			name: "option problems",
			manifest: header + `spec:
  options:
    - {name: force_it}
    - {name: force_it}
    - {name: flag, boolean: true, default: "yes"}
`,
			wantFields: []string{"spec.options[1].name", "spec.options[2].default"},
		},
		{
			name: "template problems",
			manifest: header + `spec:
  templates:
    - {destination: a.txt}
    - {source: ../outside.tmpl, destination: b.txt}
    - {source: /abs.tmpl, destination: c.txt}
    - {source: ok.tmpl}
`,
			wantFields: []string{
				"spec.templates[0].source",
				"spec.templates[1].source",
				"spec.templates[2].source",
				"spec.templates[3].destination",
			},
		},
		{
			name:       "invocation without generator",
			manifest:   header + "spec:\n  invocations:\n    - {inherit: true}\n",
			wantFields: []string{"spec.invocations[0].generator"},
		},
		{
			name:       "undecodable spec",
			manifest:   header + "spec:\n  arguments: 3\n",
			wantFields: []string{"spec"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseBytes([]byte(tt.manifest))
			require.NoError(t, err)

			err = Validate(doc)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			var fields []string
			for _, e := range verrs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	one := ValidationErrors{{Field: "name", Message: "name is required"}}
	assert.Equal(t, "validation error at name: name is required", one.Error())

	two := ValidationErrors{
		{Field: "kind", Message: "bad", Suggestion: "set kind: Generator"},
		{Field: "name", Message: "missing"},
	}
	msg := two.Error()
	assert.Contains(t, msg, "found 2 validation errors")
	assert.Contains(t, msg, "1. validation error at kind: bad. Suggestion: set kind: Generator")
	assert.Contains(t, msg, "2. validation error at name: missing")
}
