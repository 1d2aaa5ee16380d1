// Package identifier issues and verifies typed, prefixed identifiers for
// domain entities.
//
// # Overview
//
// A Service owns a registry mapping entity types to identifier prefixes
// and generates identifiers of the form {prefix}{separator}{random},
// for example "proj_X7K2M9". The random segment is drawn from a
// cryptographically secure source.
//
//	svc := identifier.NewService(identifier.Options{})
//	svc.SetEntityPrefixes(map[string]string{"project": "proj"})
//
//	id, err := svc.GenerateForEntity("project", identifier.Options{})
//	// id == "proj_A1B2C3"
//
// Parsing is case-insensitive on the prefix; Normalize rewrites an
// identifier to the registered prefix casing and uppercases the random
// segment.
//
// # Thread Safety
//
// The registry is replaced wholesale behind an atomic pointer, so readers
// never observe a half-built reverse index. Random generation is safe for
// concurrent use.
package identifier
