// Package editor talks to the HTTP bridge exposed by a running Cocos Creator
// editor. Every editor message is a POST to /api/{module}/{action} with a
// JSON body {"params": [...]}; the bridge answers {"success", "data", "error"}.
//
// The client is deliberately thin: one request, one response, no retries.
// A failed round trip is returned as a classified network error; an editor
// that answers success=false is returned as a Response, not an error, so the
// caller decides what a rejection means.
package editor
