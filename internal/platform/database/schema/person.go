// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package schema

// PersonTable represents the 'public.person' table.
type PersonTable struct {
	Table     string
	ID        string
	FullName  string
	CreatedAt string
	UpdatedAt string
}

// Person is the schema definition for public.person.
var Person = PersonTable{
	Table:     "person",
	ID:        "id",
	FullName:  "full_name",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

