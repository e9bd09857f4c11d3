// Package ui implements the interactive terminal browser for CRM taxonomies.
//
// The browse view lists tags and lists side by side (tab to switch), with a
// detail view for the selected item. Built on bubbletea with bubbles lists.
package ui
