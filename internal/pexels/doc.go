// Package pexels provides a client for the Pexels photo and video search APIs.
//
// This package enables mediamix to:
// - Search photos and videos page by page with a per-kind page size
// - Authenticate with an API key header
// - Cache responses and throttle requests to stay inside the API quota
// - Route traffic through an HTTP or SOCKS5 proxy
package pexels
