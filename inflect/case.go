package inflect

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// acronyms stay all-caps when they appear as a word in PascalCase output.
var acronyms = map[string]string{
	"id":    "ID",
	"url":   "URL",
	"uri":   "URI",
	"http":  "HTTP",
	"https": "HTTPS",
	"api":   "API",
	"uuid":  "UUID",
	"sql":   "SQL",
	"html":  "HTML",
	"json":  "JSON",
	"xml":   "XML",
	"db":    "DB",
	"ui":    "UI",
}

var titleCaser = cases.Title(language.Und)

// Pascal converts snake_case, kebab-case or camelCase to PascalCase.
// Examples: user_name → UserName, userName → UserName, user_id → UserID
func Pascal(s string) string {
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s, "_-") {
		parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
		for i, part := range parts {
			parts[i] = capitalizeWord(part)
		}
		return strings.Join(parts, "")
	}

	if unicode.IsLower(rune(s[0])) {
		return capitalizeWord(s)
	}
	return s
}

func capitalizeWord(s string) string {
	if acronym, ok := acronyms[strings.ToLower(s)]; ok {
		return acronym
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Camel converts snake_case, kebab-case or PascalCase to camelCase.
// Examples: user_name → userName, UserName → userName
func Camel(s string) string {
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s, "_-") {
		parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
		for i, part := range parts {
			if i == 0 {
				parts[i] = strings.ToLower(part)
			} else {
				parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
			}
		}
		return strings.Join(parts, "")
	}

	if unicode.IsUpper(rune(s[0])) {
		return strings.ToLower(s[:1]) + s[1:]
	}
	return s
}

// Snake converts PascalCase, camelCase or kebab-case to snake_case.
// Examples: UserName → user_name, HTTPServer → http_server
func Snake(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "_-") {
		return strings.ToLower(strings.ReplaceAll(s, "-", "_"))
	}

	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			// Split before an upper-case letter that follows a lower-case one,
			// or that ends an acronym ("HTTPServer" → "http_server").
			if i > 0 {
				prev := rune(s[i-1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					result.WriteRune('_')
				} else if i+1 < len(s) && unicode.IsLower(rune(s[i+1])) {
					result.WriteRune('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Kebab converts to kebab-case.
func Kebab(s string) string {
	return strings.ReplaceAll(Snake(s), "_", "-")
}

// Title upper-cases the first letter of each word.
func Title(s string) string {
	return titleCaser.String(s)
}
