// Package httpapi exposes the chat service over HTTP: bot management,
// multipart document upload, and server-sent-event chat streaming.
package httpapi
