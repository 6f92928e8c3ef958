// Package dynamo provides the primitives of the orbital engine.
//
//   - [Vector3]: immutable 3D vector; degenerate math yields zero, never NaN
//   - [Body]: anchor or orbiting point mass with its [Trail]
//   - [Params]: per-world physical constants
//   - [Event], [Observer]: change notifications emitted by a world
//
// # Thread Safety
//
// Bodies are plain data and not safe for concurrent use. A sim.World owns
// its bodies and serialises access to them.
package dynamo
