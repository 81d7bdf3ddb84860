package zyxel

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/ha-zyxel/ZyxelMate/internal/logger"
	"golang.org/x/crypto/ssh"
)

const (
	connectTimeout = 10 * time.Second
	// Pause between the guest-SSID configure commands, the firmware drops
	// configure-mode input that arrives back to back.
	configurePause = 500 * time.Millisecond
)

// Client talks to a Zyxel NWA50AX over SSH, one session per command. The
// firmware's CLI has no API, so everything goes through 'show' commands and
// the configure prompt.
type Client struct {
	host           string
	port           int
	username       string
	password       string
	commandTimeout time.Duration

	conn *ssh.Client

	// test seam, replaces the per-command session round trip
	runFn func(ctx context.Context, command string) (string, error)

	// test seam for the configure-mode pacing
	pause func(ctx context.Context, d time.Duration) error
}

type Option func(*Client)

func WithCommandTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.commandTimeout = d
		}
	}
}

func NewClient(host string, port int, username, password string, opts ...Option) *Client {
	c := &Client{
		host:           host,
		port:           port,
		username:       username,
		password:       password,
		commandTimeout: 15 * time.Second,
	}
	c.runFn = c.runSession
	c.pause = sleepCtx
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Host() string {
	return net.JoinHostPort(c.host, fmt.Sprintf("%d", c.port))
}

// Connect dials the device. The firmware only offers password auth, some
// builds expose it as keyboard-interactive, so both are attempted. Host keys
// are accepted unconditionally, the device regenerates them on factory reset.
func (c *Client) Connect(ctx context.Context) error {
	logger.Debug(ctx, "dialing device", "addr", c.Host(), "user", c.username)

	config := &ssh.ClientConfig{
		User: c.username,
		Auth: []ssh.AuthMethod{
			ssh.Password(c.password),
			ssh.KeyboardInteractive(func(name, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range questions {
					answers[i] = c.password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec
		Timeout:         connectTimeout,
	}

	dialer := net.Dialer{Timeout: connectTimeout}
	netConn, err := dialer.DialContext(ctx, "tcp", c.Host())
	if err != nil {
		return domainErrors.ErrDeviceUnreachable.WithError(err).WithContext("host", c.Host())
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(netConn, c.Host(), config)
	if err != nil {
		_ = netConn.Close()
		if strings.Contains(err.Error(), "unable to authenticate") {
			return domainErrors.ErrDeviceAuth.WithError(err).WithContext("user", c.username)
		}
		return domainErrors.ErrDeviceUnreachable.WithError(err).WithContext("host", c.Host())
	}

	c.conn = ssh.NewClient(sshConn, chans, reqs)
	logger.Debug(ctx, "connected to device", "addr", c.Host())
	return nil
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Run executes one CLI command in its own session, bounded by the command
// timeout.
func (c *Client) Run(ctx context.Context, command string) (string, error) {
	return c.runFn(ctx, command)
}

func (c *Client) runSession(ctx context.Context, command string) (string, error) {
	if c.conn == nil {
		return "", domainErrors.ErrDeviceUnreachable.WithContext("host", c.Host())
	}

	session, err := c.conn.NewSession()
	if err != nil {
		return "", domainErrors.ErrCommandFailed.WithError(err).WithContext("command", command)
	}
	defer func() {
		_ = session.Close()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.commandTimeout)
	defer cancel()

	type result struct {
		output []byte
		err    error
	}
	done := make(chan result, 1)
	go func() {
		output, err := session.CombinedOutput(command)
		done <- result{output, err}
	}()

	select {
	case <-ctx.Done():
		// Closing the session unblocks CombinedOutput.
		_ = session.Close()
		return "", domainErrors.ErrCommandTimeout.WithError(ctx.Err()).WithContext("command", command)
	case r := <-done:
		if r.err != nil {
			return "", domainErrors.ErrCommandFailed.WithError(r.err).WithContext("command", command)
		}
		return string(r.output), nil
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
