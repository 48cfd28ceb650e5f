package memory

import "approval-workflow/internal/entities"

func strPtr(s string) *string { return &s }

// DemoUsers mirrors the users seeded by the database migrations.
func DemoUsers() []entities.User {
	return []entities.User{
		{ID: 1, Username: "jdoe", FullName: "John Doe", Email: strPtr("john.doe@example.com")},
		{ID: 2, Username: "asmith", FullName: "Alice Smith", Email: strPtr("alice.smith@example.com")},
		{ID: 3, Username: "bjones", FullName: "Bob Jones", Email: strPtr("bob.jones@example.com")},
		{ID: 4, Username: "mgarcia", FullName: "Maria Garcia"},
	}
}

// DemoRequestTypes mirrors the request types seeded by the database migrations.
func DemoRequestTypes() []entities.RequestType {
	return []entities.RequestType{
		{ID: 1, Name: "Hardware", Description: strPtr("Laptops, monitors and other equipment")},
		{ID: 2, Name: "Software", Description: strPtr("Licenses and subscriptions")},
		{ID: 3, Name: "Access", Description: strPtr("Access to systems and environments")},
		{ID: 4, Name: "Travel"},
	}
}
