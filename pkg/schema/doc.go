// Package schema implements the declarative field model at the heart of
// go-remoteobjects. A modeled type declares an ordered set of named fields
// describing how wire keys map to typed attributes; instances decode raw
// payload mappings into typed values on demand and encode them back with
// round-trip fidelity for keys no field claims.
//
// Types referencing each other by name (including self references and types
// declared later) resolve through a Registry the first time a reference is
// decoded, so declaration order never matters as long as every referenced
// type is registered before instances are decoded.
package schema
