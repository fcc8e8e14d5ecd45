package apiclient

import (
	"net/url"
	"strconv"
	"strings"
)

// query builds a query string that keeps parameters in the order they were added.
type query struct {
	parts []string
}

func (q *query) add(key, value string) {
	q.parts = append(q.parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

// addString adds value unless it is empty.
func (q *query) addString(key, value string) {
	if value != "" {
		q.add(key, value)
	}
}

// addInt adds *value unless it is nil.
func (q *query) addInt(key string, value *int) {
	if value != nil {
		q.add(key, strconv.Itoa(*value))
	}
}

// addBool adds *value unless it is nil.
func (q *query) addBool(key string, value *bool) {
	if value != nil {
		q.add(key, strconv.FormatBool(*value))
	}
}

// attach appends the query to path, or returns path unchanged when empty.
func (q *query) attach(path string) string {
	if len(q.parts) == 0 {
		return path
	}
	return path + "?" + strings.Join(q.parts, "&")
}
