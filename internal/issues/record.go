package issues

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/temirov/ghissues/internal/githubcli"
)

const (
	titleColumnNameConstant                 = "Title"
	columnTagNameConstant                   = "mapstructure"
	labelSeparatorConstant                  = ","
	rowDecoderCreationErrorTemplateConstant = "unable to create row decoder: %w"
	rowDecodingErrorTemplateConstant        = "unable to decode row: %w"
)

// IssueRecord is one CSV row prepared for submission.
type IssueRecord struct {
	RowNumber int
	Line      int
	Title     string
	Body      string
	Labels    []string
	Milestone string
}

type issueColumns struct {
	Title     string `mapstructure:"Title"`
	Body      string `mapstructure:"Body"`
	Labels    string `mapstructure:"Labels"`
	Milestone string `mapstructure:"Milestone"`
}

// NewIssueRecord builds a record from a header-to-value row map.
// Column names are matched exactly; absent columns yield empty values and unknown columns are ignored.
func NewIssueRecord(rowNumber int, line int, row map[string]string) (IssueRecord, error) {
	var columns issueColumns
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &columns,
		TagName: columnTagNameConstant,
		MatchName: func(mapKey string, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if decoderError != nil {
		return IssueRecord{}, fmt.Errorf(rowDecoderCreationErrorTemplateConstant, decoderError)
	}
	if decodeError := decoder.Decode(row); decodeError != nil {
		return IssueRecord{}, fmt.Errorf(rowDecodingErrorTemplateConstant, decodeError)
	}

	return IssueRecord{
		RowNumber: rowNumber,
		Line:      line,
		Title:     strings.TrimSpace(columns.Title),
		Body:      strings.TrimSpace(columns.Body),
		Labels:    ParseLabels(columns.Labels),
		Milestone: strings.TrimSpace(columns.Milestone),
	}, nil
}

// ParseLabels splits a comma-separated label list, trimming each entry and dropping empty and repeated names.
// The order of first occurrence is preserved.
func ParseLabels(value string) []string {
	labels := make([]string, 0)
	seenLabels := make(map[string]struct{})
	for _, candidate := range strings.Split(value, labelSeparatorConstant) {
		trimmedLabel := strings.TrimSpace(candidate)
		if len(trimmedLabel) == 0 {
			continue
		}
		if _, seen := seenLabels[trimmedLabel]; seen {
			continue
		}
		seenLabels[trimmedLabel] = struct{}{}
		labels = append(labels, trimmedLabel)
	}
	return labels
}

// Request converts the record into a GitHub CLI issue request.
func (record IssueRecord) Request() githubcli.IssueRequest {
	return githubcli.IssueRequest{
		Title:     record.Title,
		Body:      record.Body,
		Labels:    append([]string{}, record.Labels...),
		Milestone: record.Milestone,
	}
}
