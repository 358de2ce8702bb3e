//go:build js && wasm

package subscriber

import "net/http"

// includeCredentials makes the wasm fetch transport send cookies along with
// cross-origin requests.
func includeCredentials(req *http.Request) {
	req.Header.Set("js.fetch:credentials", "include")
}
