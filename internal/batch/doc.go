// Package batch splits bulk row uploads into fixed-size chunks.
//
// The disclosure API caps how many rows a bulk endpoint accepts per request.
// A Processor cuts a row list into chunks, hands each to a callback in order,
// stops at the first failure and reports progress after every chunk.
package batch
