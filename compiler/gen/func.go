package gen

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// lowerUpper splits "firstName" into "first Name".
	lowerUpper = regexp.MustCompile(`([\p{Ll}\d])(\p{Lu})`)
	// acronymWord splits "HTTPServer" into "HTTP Server".
	acronymWord = regexp.MustCompile(`(\p{Lu})(\p{Lu}\p{Ll})`)
)

// words splits s into words on case boundaries and on any character that
// is neither a letter nor a digit.
func words(s string) []string {
	s = lowerUpper.ReplaceAllString(s, "$1 $2")
	s = acronymWord.ReplaceAllString(s, "$1 $2")
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Pascal converts s to PascalCase: each word is capitalized with the rest
// lower-cased, and a non-leading word starting with a digit is joined with
// an underscore.
//
//	Pascal("first_name")     // FirstName
//	Pascal("HTTPServer")     // HttpServer
//	Pascal("version 1.2.10") // Version_1_2_10
func Pascal(s string) string {
	// Casers are stateful and must not be shared between goroutines.
	title := cases.Title(language.Und)
	var b strings.Builder
	for i, w := range words(s) {
		if i > 0 && unicode.IsDigit([]rune(w)[0]) {
			b.WriteByte('_')
		}
		b.WriteString(title.String(w))
	}
	return b.String()
}

// EnumName returns the name of the enum synthesized for an option-set field.
func EnumName(fieldName string) string {
	return "Enum" + Pascal(fieldName)
}
