package gitrepo

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	identifierSeparatorConstant          = "/"
	identifierSegmentCountConstant       = 2
	identifierTemplateConstant           = "%s/%s"
	requiredValueMessageConstant         = "value required"
	invalidIdentifierMessageConstant     = "expected a single owner/name identifier"
	identifierParseErrorTemplateConstant = "%q: %s"
)

// RepositoryIdentifier names a hosted repository as owner and name.
type RepositoryIdentifier struct {
	Owner string
	Name  string
}

// String renders the identifier in owner/name form.
func (identifier RepositoryIdentifier) String() string {
	return fmt.Sprintf(identifierTemplateConstant, identifier.Owner, identifier.Name)
}

// IdentifierParseError indicates a value is not a usable owner/name identifier.
type IdentifierParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError IdentifierParseError) Error() string {
	return fmt.Sprintf(identifierParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRepositoryIdentifier validates value as exactly one owner/name pair.
// Surrounding whitespace is ignored; embedded whitespace or line breaks are rejected.
func ParseRepositoryIdentifier(value string) (RepositoryIdentifier, error) {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return RepositoryIdentifier{}, IdentifierParseError{Input: value, Message: requiredValueMessageConstant}
	}
	if strings.IndexFunc(trimmedValue, unicode.IsSpace) >= 0 {
		return RepositoryIdentifier{}, IdentifierParseError{Input: value, Message: invalidIdentifierMessageConstant}
	}

	segments := strings.Split(trimmedValue, identifierSeparatorConstant)
	if len(segments) != identifierSegmentCountConstant || len(segments[0]) == 0 || len(segments[1]) == 0 {
		return RepositoryIdentifier{}, IdentifierParseError{Input: value, Message: invalidIdentifierMessageConstant}
	}

	return RepositoryIdentifier{Owner: segments[0], Name: segments[1]}, nil
}
