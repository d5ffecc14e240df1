/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package template

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
)

// Template renders text/template strings with the sprig functions.
// Missing values are errors.
type Template struct {
	Values map[string]interface{}
}

func NewTemplate() *Template { return &Template{Values: map[string]interface{}{}} }

func (tem *Template) SetValue(k string, v interface{}) { tem.Values[k] = v }

func (tem *Template) SetValues(values map[string]interface{}) {
	for k, v := range values {
		tem.Values[k] = v
	}
}

// ShellQuote returns s in single quotes for a POSIX shell.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

func funcMap() template.FuncMap {
	tf := sprig.TxtFuncMap()
	tf["isString"] = func(i interface{}) bool {
		return reflect.ValueOf(i).Kind() == reflect.String
	}
	tf["isSlice"] = func(i interface{}) bool {
		return reflect.ValueOf(i).Kind() == reflect.Slice
	}
	tf["shellQuote"] = ShellQuote
	tf["joinWithPrefix"] = func(a []string, sep, prefix string) string {
		var ans []string
		for _, elem := range a {
			ans = append(ans, fmt.Sprintf("%s%s", prefix, elem))
		}
		return strings.Join(ans, sep)
	}
	tf["sort"] = func(a []string) []string {
		ans := append([]string{}, a...)
		sort.Strings(ans)
		return ans
	}
	return tf
}

func (tem *Template) Draw(raw string) (string, error) {
	t := template.New("cmd").Funcs(funcMap()).Option("missingkey=error")
	tt, err := t.Parse(raw)
	if err != nil {
		return "", err
	}
	var doc bytes.Buffer
	if err = tt.Execute(&doc, tem.Values); err != nil {
		return "", err
	}
	return doc.String(), nil
}

// DrawAll renders every template. It stops on the first error.
func (tem *Template) DrawAll(raws []string) ([]string, error) {
	ans := make([]string, 0, len(raws))
	for idx, raw := range raws {
		s, err := tem.Draw(raw)
		if err != nil {
			return nil, fmt.Errorf("error on render template %d (%s): %s",
				idx+1, raw, err.Error())
		}
		ans = append(ans, strings.TrimSpace(s))
	}
	return ans, nil
}
