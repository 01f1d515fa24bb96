// Package toggl is a client for the Toggl Track API v9 and Reports API v3.
//
// # Authentication
//
// A Client is built with exactly one Auth value, fixed for its lifetime:
//
//   - TokenAuth: API token sent as basic auth user with password "api_token"
//   - BasicAuth: account email and password
//   - SessionAuth: the __Secure-accounts-session cookie from CreateSession
//
// AuthFromEnv reads TOGGL_API_TOKEN, then TOGGL_EMAIL with TOGGL_PASSWORD,
// then TOGGL_SESSION_COOKIE.
//
// # Request Flow
//
//  1. A resource service (c.TimeEntries, c.Projects, ...) validates ids and
//     builds the request.
//  2. The governor spaces requests at least DefaultRequestInterval apart and
//     holds requests back while a 429 Retry-After is pending.
//  3. Non-2xx responses become typed errors: ValidationError, AuthError,
//     QuotaError, NotFoundError, DeprecatedEndpointError, RateLimitError and
//     ServerError. All of them unwrap to *APIError. Network failures are
//     TransportError.
//  4. A 429 is retried once after Retry-After; 5xx responses are retried
//     with exponential backoff a small number of times.
//  5. The body is decoded per endpoint, tolerating bare arrays, null and
//     items/data wrappers.
//
// # Pagination
//
// Paged lists take PageOptions. With AutoPaginate set, pages are fetched in
// order until one is shorter than PerPage or MaxPages is reached. A failing
// page fails the whole call.
//
// # Running Timers
//
// The API marks a running entry with a negative duration. TimeEntry hides
// that: Stop is nil exactly when IsRunning reports true, and a stopped entry
// always carries a non-negative Duration.
//
// # Usage Example
//
//	c, err := toggl.NewClient(toggl.TokenAuth{Token: token})
//	if err != nil {
//		return err
//	}
//	entries, err := c.TimeEntries.List(ctx, toggl.TimeEntryListOptions{
//		StartDate:   "2024-01-01",
//		EndDate:     "2024-01-31",
//		PageOptions: toggl.PageOptions{PerPage: 50, AutoPaginate: true},
//	})
package toggl
