// Package metrics defines the Prometheus instruments of the engine.
package metrics
