// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

/*
Package mail provides outbound transactional email delivery over SMTP.

It is used for account verification links, password reset links, and
role-change notifications.

Design:

  - Mailer: Interface consumed by the application layer, mockable in tests.
  - SMTPMailer: Implicit-TLS SMTP implementation for production.
  - NopMailer: Logging no-op used when SMTP is not configured (development).
*/
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// sendTimeout bounds a full SMTP conversation.
const sendTimeout = 15 * time.Second

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers transactional messages.
type Mailer interface {
	Send(context context.Context, message Message) error
}

// # SMTP Implementation

// SMTPMailer sends mail over implicit TLS (port 465 style).
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *slog.Logger
}

// NewSMTPMailer creates a production mailer.
func NewSMTPMailer(host string, port int, username, password, from string, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

/*
Send delivers a single message over an implicit-TLS SMTP connection.

Parameters:
  - context: Deadline/cancellation for the SMTP conversation.
  - message: The message to deliver.

Returns:
  - error: Wrapped transport or protocol errors, nil on success.
*/
func (mailer *SMTPMailer) Send(context context.Context, message Message) error {
	address := fmt.Sprintf("%s:%d", mailer.host, mailer.port)

	dialer := &net.Dialer{Timeout: sendTimeout}
	rawConn, err := dialer.DialContext(context, "tcp", address)
	if err != nil {
		return fmt.Errorf("mail: failed to dial smtp server: %w", err)
	}

	// Bound the whole conversation, not just the dial.
	if deadline, ok := context.Deadline(); ok {
		_ = rawConn.SetDeadline(deadline)
	} else {
		_ = rawConn.SetDeadline(time.Now().Add(sendTimeout))
	}

	tlsConn := tls.Client(rawConn, &tls.Config{ServerName: mailer.host})

	client, err := smtp.NewClient(tlsConn, mailer.host)
	if err != nil {
		_ = rawConn.Close()
		return fmt.Errorf("mail: failed to open smtp session: %w", err)
	}
	defer func() { _ = client.Close() }()

	auth := smtp.PlainAuth("", mailer.username, mailer.password, mailer.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("mail: smtp authentication failed: %w", err)
	}

	if err := client.Mail(mailer.from); err != nil {
		return fmt.Errorf("mail: sender rejected: %w", err)
	}
	if err := client.Rcpt(message.To); err != nil {
		return fmt.Errorf("mail: recipient rejected: %w", err)
	}

	bodyWriter, err := client.Data()
	if err != nil {
		return fmt.Errorf("mail: failed to open data stream: %w", err)
	}

	if _, err := bodyWriter.Write(buildMIME(mailer.from, message)); err != nil {
		return fmt.Errorf("mail: failed to write message body: %w", err)
	}
	if err := bodyWriter.Close(); err != nil {
		return fmt.Errorf("mail: failed to finalize message: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("mail: failed to close smtp session: %w", err)
	}

	mailer.logger.Info("mail_sent",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
	)

	return nil
}

// buildMIME assembles the raw RFC 5322 message bytes.
func buildMIME(from string, message Message) []byte {
	var builder strings.Builder
	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + message.To + "\r\n")
	builder.WriteString("Subject: " + message.Subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(message.Body)
	builder.WriteString("\r\n")
	return []byte(builder.String())
}

// # Development Fallback

// NopMailer logs messages instead of sending them.
// Used when SMTP credentials are not configured.
type NopMailer struct {
	logger *slog.Logger
}

// NewNopMailer creates a logging no-op mailer.
func NewNopMailer(logger *slog.Logger) *NopMailer {
	return &NopMailer{logger: logger}
}

// Send logs the would-be message and returns nil.
func (mailer *NopMailer) Send(context context.Context, message Message) error {
	mailer.logger.InfoContext(context, "mail_skipped_not_configured",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
	)
	return nil
}
