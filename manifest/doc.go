// Package manifest loads generator definitions from YAML files.
//
// A manifest declares one generator:
//
//	apiVersion: plume/v1
//	kind: Generator
//	name: model
//	metadata:
//	  description: |
//	    Creates a model and its test.
//	spec:
//	  arguments:
//	    - position: 0
//	      name: name
//	      required: true
//	      validate:
//	        pattern: "^[A-Za-z]+$"
//	        transform: pascal
//	  options:
//	    - name: package
//	      default: models
//	  templates:
//	    - source: templates/model.go.tmpl
//	      destination: "{{.package}}/{{snakeCase .name}}.go"
//	  invocations:
//	    - generator: model_test
//	      inherit: true
//
// Template sources are relative to the manifest's directory. Load discovers
// every *.plume.yml file below a set of search paths, validates each one,
// builds a generator.Definition per manifest and links invocations by
// generator name into a Registry.
package manifest
