// Package metrics provides the observability hooks for editor requests and prefab saves.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	client := editor.NewClient(url, editor.WithRecorder(metrics.NoopRecorder{}))
//
// When a metrics file is configured the CLI swaps in a PrometheusRecorder bound
// to a private registry and, on exit, writes the registry in the Prometheus
// text exposition format with WriteTextfile so node_exporter's textfile
// collector can pick it up. A one-shot CLI has no long-lived endpoint to scrape.
package metrics
