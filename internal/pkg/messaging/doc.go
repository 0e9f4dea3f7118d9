// Package messaging provides a broker-agnostic publisher used to emit
// application events.
//
// This service only produces messages (account lifecycle events); consuming
// is out of scope, so implementations expose publish and close only.
package messaging
