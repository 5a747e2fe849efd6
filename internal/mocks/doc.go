// Package mocks provides centralized mock implementations for testing.
//
// Each mock pairs per-method function fields (CreateFn, GetByIDFn, ...)
// with a simple in-memory default, so a test can either script a single
// call or lean on map-backed behavior for the rest.
package mocks
