package httpclient

import (
	"fmt"
	"io"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/gofetch/util"
)

// encodeParams turns a query payload into url.Values.
func encodeParams(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string]string:
		q := make(url.Values, len(p))
		for k, v := range p {
			q.Set(k, v)
		}
		return q, nil
	case map[string][]string:
		return url.Values(p), nil
	case string:
		q, err := url.ParseQuery(strings.TrimPrefix(p, "?"))
		if err != nil {
			return nil, fmt.Errorf("params: %w", err)
		}
		return q, nil
	}

	if util.Typer(params) != util.TypeObject {
		return nil, fmt.Errorf("params: cannot encode %s as query", util.Typer(params))
	}

	var m map[string]any
	if err := mapstructure.Decode(params, &m); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	q := make(url.Values, len(m))
	for k, v := range m {
		for _, s := range queryValues(v) {
			q.Add(k, s)
		}
	}
	return q, nil
}

func queryValues(v any) []string {
	switch util.Typer(v) {
	case util.TypeNull:
		return nil
	case util.TypeArray:
		if b, ok := v.([]byte); ok {
			return []string{string(b)}
		}
		rv := reflect.ValueOf(v)
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, queryValues(rv.Index(i).Interface())...)
		}
		return out
	case util.TypeDate:
		switch t := v.(type) {
		case time.Time:
			return []string{t.Format(time.RFC3339)}
		case *time.Time:
			return []string{t.Format(time.RFC3339)}
		}
	}
	return []string{fmt.Sprint(reflect.Indirect(reflect.ValueOf(v)).Interface())}
}

// checkBody rejects body payloads the transport cannot encode.
func checkBody(data any) error {
	switch data.(type) {
	case nil, string, []byte, io.Reader:
		return nil
	}
	switch tag := util.Typer(data); tag {
	case util.TypeObject, util.TypeArray, util.TypeNull:
		return nil
	default:
		return fmt.Errorf("data: cannot encode %s as request body", tag)
	}
}
