// Package primitives defines the binding profile: the serializable form of
// the interaction parameters a host loads for its actions.
//
// Profiles are plain structs carrying json, yaml and toml tags so any of the
// loaders in internal/production can decode them. Times are float seconds,
// the unit editors and host config files use; Interaction converts them to
// a validated holdrepeat.Config.
//
// Core invariants:
// - A profile has an ID and at least one binding
// - Binding IDs match their map keys
// - No two bindings share a key
// - Every binding converts to a valid holdrepeat.Config
package primitives
