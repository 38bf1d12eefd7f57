package search

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names understood by the remote search endpoint.
const (
	ParamCity       = "ville"
	ParamDepartment = "departement"
	ParamRegion     = "region"
	ParamSkill      = "skill"
	ParamContract   = "contrat"
	ParamDate       = "date_filter"
	ParamLimit      = "limit"
	ParamOffset     = "offset"
)

// Param is a single key/value query pair.
type Param struct {
	Key   string
	Value string
}

// Query is an ordered list of parameters. Keys repeat for multi-valued filters.
type Query []Param

// Build turns a filter state into the query sent to the search endpoint.
func Build(f FilterState, pageSize int) Query {
	q := make(Query, 0, len(f.Cities)+len(f.Departments)+len(f.Regions)+len(f.Skills)+len(f.Contracts)+3)
	q = appendAll(q, ParamCity, f.Cities)
	q = appendAll(q, ParamDepartment, f.Departments)
	q = appendAll(q, ParamRegion, f.Regions)
	q = appendAll(q, ParamSkill, f.Skills)
	q = appendAll(q, ParamContract, f.Contracts)
	if token := f.DateWindow.Token(); token != "" {
		q = append(q, Param{Key: ParamDate, Value: token})
	}
	q = append(q,
		Param{Key: ParamLimit, Value: strconv.Itoa(pageSize)},
		Param{Key: ParamOffset, Value: strconv.Itoa(f.Page * pageSize)},
	)
	return q
}

func appendAll(q Query, key string, values []string) Query {
	for _, v := range values {
		q = append(q, Param{Key: key, Value: v})
	}
	return q
}

// Encode renders the query string keeping parameter order, unlike url.Values.Encode.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
