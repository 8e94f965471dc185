// Package catalog provides an HTTP client for the remote books service.
//
// # Overview
//
// The service owns every record: it assigns identifiers, persists changes and
// enforces uniqueness. This package only moves records across the wire and
// gives callers errors they can tell apart.
//
// # Endpoints
//
//   - GET    /api/books       -> {"data": {"books": [...]}}
//   - GET    /api/books/{id}  -> {"data": {"book": {...}}}
//   - POST   /api/books       -> created record (envelope, bare record or empty)
//   - PUT    /api/books/{id}  -> updated record (same leniency as POST)
//   - DELETE /api/books/{id}  -> no body required
//
// The list envelope is a contract with the existing service and is decoded
// strictly: a success response without data.books is reported as a
// RemoteError rather than an empty collection.
//
// # Usage
//
//	client, err := catalog.NewClient("https://books.example.com",
//		catalog.WithTimeout(10*time.Second),
//		catalog.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	books, err := client.List(ctx)
//
// # Errors
//
//   - *TransportError: no HTTP response at all (refused, DNS, timeout, cancel)
//   - *RemoteError: non-2xx status, with Message extracted from the body;
//     also used when a 2xx payload cannot be decoded
//   - ErrNotFound: matched via errors.Is for any 404 RemoteError
//
// Nothing is retried. Callers decide whether to surface, retry or give up.
package catalog
