/*
Package tsv reads and writes tab separated rows.

Rows are terminated by a newline. Within a field, backslash, tab,
newline and carriage return are escaped as \\, \t, \n and \r so that
every row occupies exactly one line. Reader accepts rows terminated by
CRLF and a final row without a terminating newline.
*/
package tsv
