// Package draft mirrors wizard state to durable storage so an interrupted
// session can resume where it left off.
//
// A draft is stored as a versioned Envelope. Embedded attachment bytes are
// never persisted. Backends are interchangeable behind Store: JSON files on
// disk, a SQLite table, or Redis keys.
package draft
