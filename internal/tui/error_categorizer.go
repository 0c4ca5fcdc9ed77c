package tui

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/studiowebux/restadmin/internal/api"
	"github.com/studiowebux/restadmin/internal/panel"
)

// categorizeRequestError maps error text to an actionable hint for the log
func categorizeRequestError(errStr string) string {
	if errStr == "" {
		return ""
	}

	errLower := strings.ToLower(errStr)

	switch {
	case strings.Contains(errLower, "context canceled"):
		return "Request cancelled"

	case strings.Contains(errLower, "deadline exceeded"):
		return "Request timeout - server took too long to respond"

	case strings.Contains(errLower, "proxy"):
		return "Proxy connection failed - verify HTTP_PROXY/HTTPS_PROXY"

	case strings.Contains(errLower, "no such host"), strings.Contains(errLower, "dial tcp: lookup"):
		return "DNS resolution failed - verify the panel URL hostname"

	case strings.Contains(errLower, "connection refused"):
		return "Connection refused - check that the API server is running (restadmin serve)"

	case strings.Contains(errLower, "connection reset"):
		return "Connection reset by server"

	case strings.Contains(errLower, "network is unreachable"), strings.Contains(errLower, "no route to host"):
		return "Network unreachable - check network connection"

	case strings.Contains(errLower, "x509"), strings.Contains(errLower, "certificate"), strings.Contains(errLower, "tls"):
		return categorizeSSLError(errLower)

	case strings.Contains(errLower, "unsupported protocol"), strings.Contains(errLower, "invalid url"):
		return "Invalid URL - the panel URL needs an http or https scheme"

	case strings.Contains(errLower, "eof"):
		return "Connection closed unexpectedly"

	case strings.Contains(errLower, "failed to parse response body"):
		return "Server returned a body that is not JSON"
	}

	return "Request failed: " + errStr
}

// categorizeSSLError expects lowercased error text
func categorizeSSLError(errLower string) string {
	switch {
	case strings.Contains(errLower, "unknown authority"):
		return "TLS certificate is not trusted - set tls.ca_file in config.yaml"
	case strings.Contains(errLower, "expired"):
		return "TLS certificate has expired"
	case strings.Contains(errLower, "is valid for"):
		return "TLS hostname mismatch - certificate doesn't match the requested hostname"
	case strings.Contains(errLower, "handshake"):
		return "TLS handshake failed"
	}
	return "TLS error - check tls settings in config.yaml"
}

// categorizeError unwraps err and returns a hint describing its cause
func categorizeError(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == 404:
			return "Not found - the model or record does not exist on the server"
		case apiErr.Status >= 500:
			return fmt.Sprintf("Server error (%d) - see the server log", apiErr.Status)
		default:
			return fmt.Sprintf("Request rejected (%d)", apiErr.Status)
		}
	}

	if errors.Is(err, panel.ErrRecordNotFound) {
		return "Row is no longer in the table - refresh and retry"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timeout - server took too long to respond"
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return "TLS certificate is not trusted - set tls.ca_file in config.yaml"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if hint := categorizeNetError(opErr); hint != "" {
			return hint
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return "Request timeout - server took too long to respond"
	}

	return categorizeRequestError(err.Error())
}

// categorizeNetError handles syscall errors carried by a net.OpError
func categorizeNetError(e *net.OpError) string {
	if e.Timeout() {
		return "Connection timeout - server took too long to respond"
	}

	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return "Connection refused - check that the API server is running (restadmin serve)"
		case syscall.ECONNRESET:
			return "Connection reset by server"
		case syscall.ENETUNREACH, syscall.EHOSTUNREACH:
			return "Network unreachable - check network connection"
		}
	}
	return ""
}
