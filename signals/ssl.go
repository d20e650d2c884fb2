package signals

import (
	"context"
	"crypto/tls"
	"log"
	"net"
	"time"
)

const sslTimeout = 10 * time.Second

// SSLResult describes the state of a host's TLS certificate.
type SSLResult struct {
	IsValid       bool `json:"isValid"`
	DaysRemaining int  `json:"daysRemaining"`
}

// CheckSSL dials the host on 443 and inspects the leaf certificate.
// Returns nil when the handshake cannot be completed at all; an invalid
// certificate still yields a result with IsValid false.
func (c *Client) CheckSSL(ctx context.Context, host string) *SSLResult {
	ctx, cancel := context.WithTimeout(ctx, sslTimeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{},
		// Verification failures are a finding, not an error.
		Config: &tls.Config{InsecureSkipVerify: true},
	}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, "443"))
	if err != nil {
		log.Printf("ssl: dial failed for %s: %v", host, err)
		return nil
	}
	defer conn.Close()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return nil
	}
	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return nil
	}

	leaf := certs[0]
	now := time.Now()
	days := int(leaf.NotAfter.Sub(now).Hours() / 24)

	valid := now.After(leaf.NotBefore) && now.Before(leaf.NotAfter)
	if valid {
		if err := leaf.VerifyHostname(host); err != nil {
			valid = false
		}
	}

	return &SSLResult{IsValid: valid, DaysRemaining: days}
}
