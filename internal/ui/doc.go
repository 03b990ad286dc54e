// Package ui renders command lifecycle events as short console sentences so a
// reader can follow which commits and files the audit touches.
package ui
