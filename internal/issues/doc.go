// Package issues submits one GitHub issue per row of a CSV file through the
// GitHub CLI. Rows are processed strictly in file order and the first failing
// row halts the run.
package issues
