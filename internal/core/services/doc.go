// Package services implements the driving port interfaces.
//
// Three services cover the pipeline: Uploader ingests raw records with
// batched dual-writes, Reader joins the index with the blob store on
// the read path, and Harvester feeds the uploader from the upstream
// search API. All storage and network access goes through driven
// ports; the services themselves are pure Go.
package services
