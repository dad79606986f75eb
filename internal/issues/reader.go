package issues

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

const (
	byteOrderMarkConstant             = "\ufeff"
	emptyFileMessageConstant          = "file has no header row"
	unreadableHeaderMessageConstant   = "unable to read header row"
	missingTitleColumnMessageConstant = "header has no Title column"
	malformedRecordMessageConstant    = "malformed record"
	unreadableRecordMessageConstant   = "unable to read record"
)

// IssueReader decodes issue records from CSV content with a header row.
type IssueReader struct {
	path      string
	csvReader *csv.Reader
	header    []string
	rowNumber int
}

// NewIssueReader reads and validates the header from source. path is used in error messages only.
// The header must contain a Title column; a leading byte-order mark is ignored.
func NewIssueReader(source io.Reader, path string) (*IssueReader, error) {
	csvReader := csv.NewReader(source)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	header, headerError := csvReader.Read()
	if headerError != nil {
		if errors.Is(headerError, io.EOF) {
			return nil, FileAccessError{Path: path, Message: emptyFileMessageConstant}
		}
		return nil, FileAccessError{Path: path, Line: parseErrorLine(headerError), Message: unreadableHeaderMessageConstant, Cause: headerError}
	}

	normalizedHeader := append([]string{}, header...)
	if len(normalizedHeader) > 0 {
		normalizedHeader[0] = strings.TrimPrefix(normalizedHeader[0], byteOrderMarkConstant)
	}

	if !containsColumn(normalizedHeader, titleColumnNameConstant) {
		return nil, FileAccessError{Path: path, Line: 1, Message: missingTitleColumnMessageConstant}
	}

	return &IssueReader{path: path, csvReader: csvReader, header: normalizedHeader}, nil
}

// Header returns the column names in file order.
func (reader *IssueReader) Header() []string {
	return append([]string{}, reader.header...)
}

// Next returns the next record, or io.EOF once every row has been read.
// Values beyond the header width are ignored and missing values are empty.
func (reader *IssueReader) Next() (IssueRecord, error) {
	values, readError := reader.csvReader.Read()
	if readError != nil {
		if errors.Is(readError, io.EOF) {
			return IssueRecord{}, io.EOF
		}
		return IssueRecord{}, describeReadFailure(reader.path, readError)
	}

	line, _ := reader.csvReader.FieldPos(0)
	reader.rowNumber++

	row := make(map[string]string, len(reader.header))
	for columnIndex, columnName := range reader.header {
		value := ""
		if columnIndex < len(values) {
			value = values[columnIndex]
		}
		row[columnName] = value
	}

	record, recordError := NewIssueRecord(reader.rowNumber, line, row)
	if recordError != nil {
		return IssueRecord{}, FileAccessError{Path: reader.path, Line: line, Message: malformedRecordMessageConstant, Cause: recordError}
	}
	return record, nil
}

func containsColumn(header []string, columnName string) bool {
	for _, candidate := range header {
		if candidate == columnName {
			return true
		}
	}
	return false
}

func describeReadFailure(path string, readError error) FileAccessError {
	var parseError *csv.ParseError
	if errors.As(readError, &parseError) {
		return FileAccessError{Path: path, Line: parseError.StartLine, Message: malformedRecordMessageConstant, Cause: readError}
	}
	return FileAccessError{Path: path, Message: unreadableRecordMessageConstant, Cause: readError}
}

func parseErrorLine(readError error) int {
	var parseError *csv.ParseError
	if errors.As(readError, &parseError) {
		return parseError.StartLine
	}
	return 0
}
