// Package types defines the board entity model, the configuration type and
// the standard errors shared by the kanban packages.
//
// A board document is a single JSON artifact:
//
//	{
//	  "lists": [
//	    {"id": "...", "title": "Backlog", "cards": [ ... ]}
//	  ],
//	  "archive": {"lists": [{"id": "...", "title": "..."}], "cards": [ ... ]},
//	  "settings": {"labels": [{"id": "...", "title": "bug", "color": "#eb5a46"}]}
//	}
//
// Values of these types are treated as immutable snapshots. Code that needs
// a changed board builds a new value (see internal/transform) instead of
// assigning into the slices of an existing one.
package types
