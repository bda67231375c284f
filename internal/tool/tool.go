// Package tool defines the fixed catalogue of data-fetch operations the
// workflow can invoke. Each tool is a thin, declarative binding from
// named arguments to one upstream MLB Stats API endpoint; tools never
// reshape the JSON they fetch.
package tool

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// API version bases a binding can be anchored to. The registry resolves
// these to concrete base URLs at construction time.
const (
	BaseV1  = "v1"
	BaseV11 = "v1.1"
)

// Param declares one accepted parameter of a binding.
//
// A parameter whose name appears as a {placeholder} in the binding's path
// template is substituted into the path; all others are appended to the
// query string under QueryKey (or the parameter name when QueryKey is
// empty). Default, when set, is used for absent optional parameters.
type Param struct {
	Name        string
	Required    bool
	Default     string
	QueryKey    string
	Description string
}

// Binding is one declarative endpoint binding.
type Binding struct {
	Name        string
	Description string
	Base        string
	Path        string
	Params      []Param
}

// Descriptor is the introspection view of a binding, handed to the
// planner so it can describe available tools to the reasoning model.
type Descriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []ParamSpec `json:"params"`
}

// ParamSpec describes one parameter in a Descriptor.
type ParamSpec struct {
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// Describe builds the Descriptor for a binding.
func (b Binding) Describe() Descriptor {
	specs := make([]ParamSpec, 0, len(b.Params))
	for _, p := range b.Params {
		specs = append(specs, ParamSpec{Name: p.Name, Required: p.Required, Description: p.Description})
	}
	return Descriptor{Name: b.Name, Description: b.Description, Params: specs}
}

// buildURL substitutes args into the binding's path template and query
// string against the resolved base URL. Missing required parameters are
// reported by name.
func (b Binding) buildURL(base string, args map[string]any) (string, []string) {
	var missing []string

	path := b.Path
	values := url.Values{}

	for _, p := range b.Params {
		raw, present := args[p.Name]
		val := ""
		if present {
			val = formatArg(raw)
			if val == "" {
				present = false
			}
		}
		if !present && p.Default != "" {
			val = p.Default
			present = true
		}

		placeholder := "{" + p.Name + "}"
		if strings.Contains(b.Path, placeholder) {
			if !present {
				missing = append(missing, p.Name)
				continue
			}
			path = strings.ReplaceAll(path, placeholder, url.PathEscape(val))
			continue
		}

		if !present {
			if p.Required {
				missing = append(missing, p.Name)
			}
			continue
		}
		key := p.QueryKey
		if key == "" {
			key = p.Name
		}
		values.Set(key, val)
	}

	if len(missing) > 0 {
		return "", missing
	}

	full := strings.TrimSuffix(base, "/") + path
	if encoded := values.Encode(); encoded != "" {
		full += "?" + encoded
	}
	return full, nil
}

// formatArg renders a JSON-decoded argument value as an endpoint
// parameter string. JSON numbers arrive as float64; identifiers such as
// game_pk must not be rendered in scientific notation.
func formatArg(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}
