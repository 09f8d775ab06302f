// Package http wires the chi router and request handlers for the
// sales forecasting API. Workbooks arrive as multipart uploads;
// responses are JSON or downloadable report files, with errors in
// RFC 7807 problem format.
package http
