package config

import (
	"net/url"
	"strings"

	"github.com/titanous/json5"

	"github.com/arthur-debert/stylelint-loader/pkg/errors"
)

var specialValues = map[string]interface{}{
	"null":  nil,
	"true":  true,
	"false": false,
}

// ParseQuery parses the inline options of an import, e.g.
// "?displayOutput=false&+ignoreCache" or "?{configFile:'x.js'}".
// An object query is read as JSON5. A trailing "#fragment" is ignored.
func ParseQuery(query string) (map[string]interface{}, error) {
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}
	if query == "" {
		return map[string]interface{}{}, nil
	}
	if !strings.HasPrefix(query, "?") {
		return nil, errors.Newf(errors.ErrInvalidInput, "query %q must begin with '?'", query)
	}
	query = query[1:]

	if strings.HasPrefix(query, "{") && strings.HasSuffix(query, "}") {
		result := make(map[string]interface{})
		if err := json5.Unmarshal([]byte(query), &result); err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid JSON5 query")
		}
		return result, nil
	}

	result := make(map[string]interface{})
	for _, arg := range strings.FieldsFunc(query, func(r rune) bool { return r == '&' || r == ',' }) {
		name, value, hasValue := strings.Cut(arg, "=")
		if !hasValue {
			switch arg[0] {
			case '-':
				result[unescape(arg[1:])] = false
			case '+':
				result[unescape(arg[1:])] = true
			default:
				result[unescape(arg)] = true
			}
			continue
		}

		var v interface{} = unescape(value)
		if special, ok := specialValues[v.(string)]; ok {
			v = special
		}

		if strings.HasSuffix(name, "[]") {
			name = unescape(strings.TrimSuffix(name, "[]"))
			list, _ := result[name].([]interface{})
			result[name] = append(list, v)
			continue
		}
		result[unescape(name)] = v
	}
	return result, nil
}

func unescape(s string) string {
	u, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return u
}
