// Package config defines timekeeper settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the tick interval, the world clock zone catalog,
// alarms to register at startup, the log level and the optional metrics
// listen address.
package config
