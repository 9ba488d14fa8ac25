/*
Package observability turns lifecycle hooks into operational signals.

Metrics exports Prometheus collectors fed by the engine hooks (turns by route,
oracle latency and failures, cart additions, completed orders and revenue).
LogHooks writes the same events to a structured logger.
*/
package observability
