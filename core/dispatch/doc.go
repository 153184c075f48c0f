// Package dispatch orchestrates route planning: it feeds traffic data and
// the fleet snapshot into the planner, stamps duration estimates onto the
// resulting routes and fans the outcome out to metrics, logs, events and the
// optional route transport.
package dispatch
