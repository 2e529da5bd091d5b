// Package vaulttest provides mocks and helpers for testing sigvault
// components. Generated conditions are deterministic within a process
// and distinct across calls, which is all the tests need.
package vaulttest
