// Package analytics derives statistics from a user's scored time slots.
//
// Every function here is a pure transformation of the log entries it is
// given: no storage access, no clock reads, no logging. Functions that need
// "today" take it as an argument, so callers decide which timezone defines
// the day boundary. Inputs are never mutated and repeated calls with the same
// input return equal results.
//
// Dates are compared as calendar days normalized with utils.DateOf. Weekday
// buckets use Monday=0 ... Sunday=6. Weekly goal windows start on Saturday.
//
// Degenerate input never panics or errors: empty logs, zero goals and zero
// denominators each map to a documented zero value.
package analytics
