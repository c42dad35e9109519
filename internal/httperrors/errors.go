// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns backend failures into user-facing explanations.
package httperrors

import (
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	apperrors "grainmgr/cli/internal/errors"
	"grainmgr/cli/internal/logging"
	"grainmgr/cli/internal/router"
	"grainmgr/cli/internal/transport"

	"github.com/pterm/pterm"
)

// Present writes a friendly explanation of err to w. context describes what
// the CLI was doing, e.g. "loading depots". Session expiry is skipped because
// the transport already showed its notice.
func Present(w io.Writer, err error, context string, host string) {
	if err == nil {
		return
	}
	switch {
	case apperrors.IsKind(err, apperrors.AuthorizationExpired):
		return
	case apperrors.IsKind(err, apperrors.NetworkFailure):
		presentNetwork(w, err, context, host)
	case apperrors.IsKind(err, apperrors.HTTPFailure):
		presentHTTP(w, err, context)
	case apperrors.IsKind(err, apperrors.ConfigInvalid):
		pterm.Fprintln(w, pterm.Error.Sprint("Invalid configuration: "+logging.Mask(messageOf(err))))
		pterm.Fprintln(w, "Check "+hint("grainmgr config")+" or the GRAINMGR_* environment variables.")
	case errors.Is(err, router.ErrNotFound):
		pterm.Fprintln(w, pterm.Error.Sprint("No such page. Run "+hint("grainmgr routes")+" to list them."))
	default:
		pterm.Fprintln(w, pterm.Error.Sprint(logging.PresentError(context, err)))
	}
}

func hint(s string) string { return pterm.LightCyan(s) }

func messageOf(err error) string {
	var e *apperrors.E
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

// causeOf returns what the first *apperrors.E in err's chain wraps, so the
// kind and request prefix stay out of user output.
func causeOf(err error) error {
	var e *apperrors.E
	if errors.As(err, &e) && e.Err != nil {
		return e.Err
	}
	return err
}

func presentHTTP(w io.Writer, err error, context string) {
	var he *transport.HTTPError
	if !errors.As(err, &he) {
		pterm.Fprintln(w, pterm.Error.Sprint(logging.PresentError(context, err)))
		return
	}
	if he.StatusCode >= 500 {
		pterm.Fprintln(w, pterm.Error.Sprintf("Server error while %s (%d %s)", context, he.StatusCode, http.StatusText(he.StatusCode)))
		pterm.Fprintln(w)
		pterm.Fprintln(w, "The Grain Management System API failed to answer. This is not a problem with your setup.")
		pterm.Fprintln(w, "  • Please try again in a few minutes")
		pterm.Fprintln(w)
		return
	}
	msg := he.Detail
	if msg == "" {
		msg = http.StatusText(he.StatusCode)
	}
	pterm.Fprintln(w, pterm.Error.Sprintf("Cannot complete %s: %s", context, logging.Mask(msg)))
}

func presentNetwork(w io.Writer, err error, context, host string) {
	if host == "" {
		host = "the server"
	}
	switch {
	case isTimeoutError(err):
		pterm.Fprintln(w, pterm.Error.Sprintf("Connection timeout while %s", context))
		pterm.Fprintln(w)
		pterm.Fprintln(w, "The server took too long to respond. This could mean:")
		pterm.Fprintln(w, "  • Slow network connection")
		pterm.Fprintln(w, "  • Server is under heavy load")
		pterm.Fprintln(w)
	case isDNSError(err):
		pterm.Fprintln(w, pterm.Error.Sprintf("Cannot resolve server address while %s", context))
		pterm.Fprintln(w)
		pterm.Fprintln(w, pterm.Sprintf("Unable to look up %s. Check base_url in your configuration.", host))
		pterm.Fprintln(w)
	case isConnectionRefusedError(err):
		pterm.Fprintln(w, pterm.Error.Sprintf("Connection refused while %s", context))
		pterm.Fprintln(w)
		pterm.Fprintln(w, pterm.Sprintf("Nothing is listening on %s. This could mean:", host))
		pterm.Fprintln(w, "  • The API server is not running")
		pterm.Fprintln(w, "  • Wrong server address or port in base_url")
		pterm.Fprintln(w)
	case isSSLError(err):
		pterm.Fprintln(w, pterm.Error.Sprintf("Secure connection failed while %s", context))
		pterm.Fprintln(w)
		pterm.Fprintln(w, "Cannot establish an HTTPS connection. Check the certificate and your system clock.")
		pterm.Fprintln(w)
	default:
		pterm.Fprintln(w, pterm.Error.Sprintf("Cannot reach %s while %s", host, context))
		pterm.Fprintln(w)
		details := logging.Mask(causeOf(err).Error())
		if len(details) > 100 {
			details = details[:100] + "..."
		}
		pterm.Fprintln(w, pterm.Gray("Technical details: "+details))
		pterm.Fprintln(w)
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// HostOf extracts the host from a URL for error messages.
func HostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}
