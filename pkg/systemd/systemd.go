// SPDX-License-Identifier: Apache-2.0

// Package systemd wraps the systemd dbus API for the few service operations
// the provisioner needs.
package systemd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/dbus"
)

const connectTimeout = 10 * time.Second

// DaemonReload reloads the systemd manager configuration.
// It is equivalent to running "systemctl daemon-reload".
func DaemonReload(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, connectTimeout)
	defer cancel()

	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return fmt.Errorf("connect to systemd: %w", err)
	}
	defer conn.Close()

	if err := conn.ReloadContext(ctx); err != nil {
		return fmt.Errorf("daemon-reload: %w", err)
	}
	return nil
}

// EnableService enables the specified service.
// It is equivalent to running "systemctl enable <service>".
// The service name can be provided with or without the .service suffix.
func EnableService(parent context.Context, name string) error {
	ctx, cancel := context.WithTimeout(parent, connectTimeout)
	defer cancel()

	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return fmt.Errorf("connect to systemd: %w", err)
	}
	defer conn.Close()

	serviceName := ensureServiceSuffix(name)

	// The second parameter 'false' means to enable persistently, not for
	// runtime only. The third forces overwriting existing symlinks.
	_, _, err = conn.EnableUnitFilesContext(ctx, []string{serviceName}, false, true)
	if err != nil {
		return fmt.Errorf("enable service %s: %w", serviceName, err)
	}

	return nil
}

// StartService starts the specified service and waits until the start job
// finishes. It is equivalent to running "systemctl start <service>".
func StartService(parent context.Context, name string) error {
	ctx, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()

	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return fmt.Errorf("connect to systemd: %w", err)
	}
	defer conn.Close()

	serviceName := ensureServiceSuffix(name)

	jobChan := make(chan string, 1) // buffered channel to avoid goroutine leaks

	_, err = conn.StartUnitContext(ctx, serviceName, "replace", jobChan)
	if err != nil {
		return fmt.Errorf("start service %s: %w", serviceName, err)
	}

	select {
	case result := <-jobChan:
		if result != "done" {
			return fmt.Errorf("service %s start failed: %s", serviceName, result)
		}
		return nil

	case <-ctx.Done():
		return fmt.Errorf("timeout waiting for service %s to start: %w", serviceName, ctx.Err())
	}
}

// IsServiceActive reports whether the service unit is currently active.
// It is equivalent to running "systemctl is-active <service>".
func IsServiceActive(parent context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(parent, connectTimeout)
	defer cancel()

	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return false, fmt.Errorf("connect to systemd: %w", err)
	}
	defer conn.Close()

	serviceName := ensureServiceSuffix(name)

	units, err := conn.ListUnitsByNamesContext(ctx, []string{serviceName})
	if err != nil {
		return false, fmt.Errorf("query service %s: %w", serviceName, err)
	}

	for _, unit := range units {
		if unit.Name == serviceName {
			return unit.ActiveState == "active", nil
		}
	}

	return false, nil
}

func ensureServiceSuffix(name string) string {
	if strings.HasSuffix(name, ".service") {
		return name
	}
	return name + ".service"
}
