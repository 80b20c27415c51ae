// Package updater applies section update steps to the profile document.
//
// A Runner reads the document once, passes it through every Step in order
// and writes it back once. Steps are isolated: a failing step leaves the
// document as the previous step produced it and the remaining steps still
// run. Only reading or writing the document aborts a run.
package updater
