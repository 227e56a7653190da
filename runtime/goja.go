package runtime

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

// ErrNoRuntimeObject is returned when a loaded JS program does not leave a
// runtime object behind.
var ErrNoRuntimeObject = errors.New("script did not define a runtime object")

// RuntimeGlobal is the global name a hosted JS runtime must bind its entry
// point object to.
const RuntimeGlobal = "runtime"

// GojaHandle adapts a JS object hosted in a goja interpreter to the Handle
// interface. In production the runtime surface is a wasm export object
// reachable from JS; hosting the same shape in goja gives the wrapper a
// native foreign object to probe for development and tests.
type GojaHandle struct {
	vm  *goja.Runtime
	obj *goja.Object
}

// NewGojaHandle wraps an existing JS object.
func NewGojaHandle(vm *goja.Runtime, obj *goja.Object) *GojaHandle {
	return &GojaHandle{vm: vm, obj: obj}
}

// LoadJSRuntime evaluates a JS program and wraps the object it binds to the
// `runtime` global.
func LoadJSRuntime(src string) (*GojaHandle, error) {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	if _, err := vm.RunString(src); err != nil {
		var exc *goja.Exception
		if errors.As(err, &exc) {
			return nil, fmt.Errorf("runtime script failed: %s", exc.String())
		}
		return nil, err
	}
	v := vm.Get(RuntimeGlobal)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, ErrNoRuntimeObject
	}
	obj := v.ToObject(vm)
	if obj == nil {
		return nil, ErrNoRuntimeObject
	}
	return &GojaHandle{vm: vm, obj: obj}, nil
}

// Has reports whether the object exposes a callable entry point.
func (h *GojaHandle) Has(name string) bool {
	v := h.obj.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return false
	}
	_, ok := goja.AssertFunction(v)
	return ok
}

// Call invokes an entry point and renders its result as raw JSON text:
// strings pass through (the runtime surface already speaks JSON text),
// undefined/null become "", anything else is marshalled.
func (h *GojaHandle) Call(name string, args ...any) (string, error) {
	v := h.obj.Get(name)
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return "", missing(name)
	}
	vals := make([]goja.Value, len(args))
	for i, a := range args {
		vals[i] = h.vm.ToValue(a)
	}
	res, err := fn(h.obj, vals...)
	if err != nil {
		var exc *goja.Exception
		if errors.As(err, &exc) {
			return "", fmt.Errorf("%s: %s", name, exc.String())
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if res == nil || goja.IsUndefined(res) || goja.IsNull(res) {
		return "", nil
	}
	if s, ok := res.Export().(string); ok {
		return s, nil
	}
	b, err := json.Marshal(res.Export())
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(b), nil
}
