// Package http provides the HTTP client shared by the search API and the
// song downloader.
//
// This package handles:
//   - Connection pooling and request timeouts
//   - Retry with exponential backoff on transport and 5xx errors
//   - Mapping of error status codes to sentinel errors
//
// # Usage
//
//	client := http.NewClient(http.DefaultOptions())
//
//	resp, err := client.Get(ctx, url)
//	if err != nil {
//	    return err
//	}
//	defer resp.Body.Close()
package http
