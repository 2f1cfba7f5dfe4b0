// Package value provides the runtime representation of JSON-like data
// flowing through the parsing pipeline. A Value is an immutable tagged
// union over null, bool, int, float, string, array and map, produced by
// the JSON parser or by coercion and consumed by decoding.
package value
