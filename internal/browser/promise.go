//go:build js && wasm

package browser

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"
)

// await blocks until p settles or ctx ends. It must not be called from inside
// a js.FuncOf callback.
func await(ctx context.Context, p js.Value) (js.Value, error) {
	type settled struct {
		value js.Value
		err   error
	}
	done := make(chan settled, 1)

	var onResolve, onReject js.Func
	release := func() {
		onResolve.Release()
		onReject.Release()
	}
	onResolve = js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- settled{value: firstArg(args)}
		return nil
	})
	onReject = js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- settled{err: jsError(firstArg(args))}
		return nil
	})
	p.Call("then", onResolve, onReject)

	select {
	case res := <-done:
		release()
		return res.value, res.err
	case <-ctx.Done():
		// The promise may still settle; keep the callbacks alive until it does.
		go func() {
			<-done
			release()
		}()
		return js.Undefined(), ctx.Err()
	}
}

func firstArg(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}

func jsError(v js.Value) error {
	if v.Type() == js.TypeObject {
		if name, msg := v.Get("name"), v.Get("message"); msg.Type() == js.TypeString {
			if name.Type() == js.TypeString {
				return fmt.Errorf("%s: %s", name.String(), msg.String())
			}
			return errors.New(msg.String())
		}
	}
	return fmt.Errorf("promise rejected: %s", js.Global().Get("String").Invoke(v).String())
}

// stringMap copies the own enumerable string properties of obj.
func stringMap(obj js.Value) map[string]string {
	if obj.Type() != js.TypeObject {
		return nil
	}
	keys := js.Global().Get("Object").Call("keys", obj)
	out := make(map[string]string, keys.Length())
	for i := 0; i < keys.Length(); i++ {
		key := keys.Index(i).String()
		if v := obj.Get(key); v.Type() == js.TypeString {
			out[key] = v.String()
		}
	}
	return out
}
