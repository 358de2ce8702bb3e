//go:build !(js && wasm)

package subscriber

import "net/http"

// Outside the browser there is no fetch credentials mode to set.
func includeCredentials(*http.Request) {}
