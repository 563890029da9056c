// Package connectors holds clients for external decision sources.
// Each connector implements the DecisionFetcher driven port against
// one upstream API and keeps that API's quirks (payload nesting,
// pacing, markup) out of the core.
package connectors
