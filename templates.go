package kotlinpoet

import (
	"reflect"
)

// AddTemplate is like AddNamed, but takes its arguments from data, which
// may be a map with string keys or a struct (or pointer to one). A struct
// field is named by its `kotlin` tag, or else by its decapitalized field
// name; fields tagged `kotlin:"-"` are skipped.
//
//	type widget struct {
//		Name  string
//		Class *kotlinpoet.ClassName `kotlin:"type"`
//	}
//	b.AddTemplate("val %name:N = %type:T()\n", widget{"w", widgetClass})
func (b *CodeBlockBuilder) AddTemplate(format string, data interface{}) *CodeBlockBuilder {
	return b.AddNamed(format, NamedArgs(data))
}

// CodeBlockFromTemplate returns a code block built with AddTemplate.
func CodeBlockFromTemplate(format string, data interface{}) CodeBlock {
	return NewCodeBlockBuilder().AddTemplate(format, data).Build()
}

// NamedArgs converts data into named arguments as described for
// AddTemplate. It panics with a usage error if data is neither a struct nor
// a map with string keys.
func NamedArgs(data interface{}) map[string]interface{} {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		requiref(!v.IsNil(), "nil template data")
		v = v.Elem()
	}
	args := map[string]interface{}{}
	switch v.Kind() {
	case reflect.Map:
		requiref(v.Type().Key().Kind() == reflect.String, "template data map must have string keys, got %s", v.Type())
		iter := v.MapRange()
		for iter.Next() {
			args[iter.Key().String()] = iter.Value().Interface()
		}
	case reflect.Struct:
		addStructArgs(args, v)
	default:
		failf("template data must be a struct or a map, got %s", v.Type())
	}
	return args
}

func addStructArgs(args map[string]interface{}, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("kotlin")
		if tag == "-" {
			continue
		}
		if f.Anonymous && f.IsExported() && tag == "" && f.Type.Kind() == reflect.Struct {
			addStructArgs(args, v.Field(i))
			continue
		}
		name := tag
		if name == "" {
			name = Decapitalize(f.Name)
		}
		fld, ok := getField(v, i)
		if !ok {
			// unexported and unreadable without unsafe
			continue
		}
		if _, dup := args[name]; dup {
			failf("template argument %q is defined twice in %s", name, t)
		}
		args[name] = fld.Interface()
	}
}
