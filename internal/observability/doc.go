// Package observability builds the structured logger and the Prometheus
// metrics a run reports into.
package observability
