package term

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"text/tabwriter"
)

func Table(slice any, attributes ...string) error {
	return DefaultTerm.Table(slice, attributes...)
}

// Table prints the named fields of each element of slice as aligned columns.
// A single struct is printed as a one-row table. In JSON mode the value is
// encoded as-is and attributes are ignored.
func (t *Term) Table(slice any, attributes ...string) error {
	if t.json {
		enc := json.NewEncoder(t.out)
		enc.SetIndent("", "  ")
		return enc.Encode(slice)
	}

	val := reflect.ValueOf(slice)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	switch val.Kind() {
	case reflect.Slice, reflect.Array:
	case reflect.Struct:
		single := reflect.MakeSlice(reflect.SliceOf(val.Type()), 1, 1)
		single.Index(0).Set(val)
		val = single
	default:
		return errors.New("Table: input is not a slice")
	}

	w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)

	var err error

	var resetBold string
	if t.StdoutCanColor() {
		fmt.Fprintln(w, boldColorStr) // must be separate line or it will be counted as part of the 1st header
		resetBold = resetColorStr
	}

	for i, attr := range attributes {
		var prefix string
		if i > 0 {
			prefix = "\t"
		}
		_, err = fmt.Fprint(w, prefix, strings.ToUpper(attr))
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w, resetBold)
	if err != nil {
		return err
	}

	for i := range val.Len() {
		item := val.Index(i)
		if item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
			item = item.Elem()
		}

		for j, attr := range attributes {
			var prefix string
			if j > 0 {
				prefix = "\t"
			}
			var field reflect.Value
			if item.Kind() == reflect.Struct {
				field = item.FieldByName(attr)
			}
			if !field.IsValid() {
				_, err = fmt.Fprint(w, prefix, "N/A")
			} else {
				_, err = fmt.Fprint(w, prefix, field.Interface())
			}
			if err != nil {
				return err
			}
		}
		_, err = fmt.Fprintln(w)
		if err != nil {
			return err
		}
	}

	return w.Flush()
}
