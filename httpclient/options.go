package httpclient

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Options overrides descriptor fields for one call. Keys match descriptor
// fields case-insensitively (method, url, params, data, headers, timeout, auth, id).
// Unknown keys are carried in Descriptor.Extra.
type Options map[string]any

// MergeOptions returns the shallow union of bags. Later bags win per key.
func MergeOptions(bags ...Options) Options {
	out := make(Options)
	for _, bag := range bags {
		for k, v := range bag {
			out[k] = v
		}
	}
	return out
}

// apply writes every option onto d. A present key replaces the whole field.
func (o Options) apply(d *Descriptor) error {
	rv := reflect.ValueOf(d).Elem()
	rt := rv.Type()
	for key, value := range o {
		idx, ok := fieldIndex(rt, key)
		if !ok {
			if d.Extra == nil {
				d.Extra = make(map[string]any)
			}
			d.Extra[key] = value
			continue
		}
		field := rv.Field(idx)
		converted, err := convert(value, field.Type())
		if err != nil {
			return fmt.Errorf("option %q: %w", key, err)
		}
		field.Set(converted)
	}
	return nil
}

// fieldIndex finds the descriptor field whose mapstructure tag matches key.
func fieldIndex(rt reflect.Type, key string) (int, bool) {
	for i := 0; i < rt.NumField(); i++ {
		tag, _, _ := strings.Cut(rt.Field(i).Tag.Get("mapstructure"), ",")
		if tag == "" || tag == "-" {
			continue
		}
		if strings.EqualFold(tag, key) {
			return i, true
		}
	}
	return 0, false
}

func convert(value any, to reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(to), nil
	}
	if v := reflect.ValueOf(value); v.Type().AssignableTo(to) {
		return v, nil
	}
	out := reflect.New(to)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out.Interface(),
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return reflect.Value{}, err
	}
	if err := dec.Decode(value); err != nil {
		return reflect.Value{}, err
	}
	return out.Elem(), nil
}
