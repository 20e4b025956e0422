// Package identsdk provides the shared API surface of the identity
// service: request/response types, request validation, typed errors,
// and a Go client.
//
// The types here are used on both sides of the wire. The HTTP handlers
// decode requests into them and encode responses from them; the client
// does the reverse. Keeping them in one package means the server and
// its consumers can never drift apart on field names.
//
// # Client usage
//
//	client := identsdk.NewClient("http://localhost:8080")
//
//	session, err := client.Register(ctx, identsdk.RegisterRequest{
//		FirstName: "John",
//		LastName:  "Doe",
//		Email:     "john@example.com",
//		Password:  "password",
//	})
//	if err != nil {
//		// *identsdk.APIError carries the status code and envelope fields
//	}
//
//	orgs, err := session.ListOrganisations(ctx)
//
// Sessions hold a bearer token issued at register or login time. Tokens
// are short-lived and there is no refresh flow; when a token expires the
// caller logs in again.
package identsdk
