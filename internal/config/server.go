// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"net"
	"time"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string `yaml:"listenAddr"`

	// MetricsAddr enables a separate Prometheus listener when set.
	MetricsAddr string `yaml:"metricsAddr"`

	// BindInterface replaces the host of a ":PORT" listen address, either with
	// a literal host or with "if:<name>" for the first IPv4 of an interface.
	BindInterface string `yaml:"bindInterface"`

	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration `yaml:"readTimeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `yaml:"writeTimeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout time.Duration `yaml:"idleTimeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header's keys and values
	MaxHeaderBytes int `yaml:"maxHeaderBytes"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	// TrustedProxies lists IPs or CIDRs allowed to set X-Forwarded-Proto.
	TrustedProxies []string `yaml:"trustedProxies"`
}

const (
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultMaxHeaderBytes  = 1 << 20 // 1 MB
	defaultShutdownTimeout = 15 * time.Second
	minShutdownTimeout     = 3 * time.Second
)

// BindListenAddr replaces the host part of a listen address when it is of the
// form ":PORT" or empty. Explicit host:port values are left untouched.
// Supports "if:<name>" to bind to the first non-loopback IPv4 of an interface.
func BindListenAddr(listenAddr, bind string) (string, error) {
	if bind == "" {
		return listenAddr, nil
	}
	if listenAddr != "" && listenAddr[0] != ':' {
		return listenAddr, nil
	}

	port := listenAddr
	if port == "" {
		port = ":0"
	}

	host := bind
	if len(bind) > 3 && bind[:3] == "if:" {
		ip, err := interfaceIPv4(bind[3:])
		if err != nil {
			return "", err
		}
		host = ip
	}

	return net.JoinHostPort(host, port[1:]), nil
}

func interfaceIPv4(name string) (string, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return "", fmt.Errorf("resolve interface %q: %w", name, err)
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return "", fmt.Errorf("list addrs for %q: %w", name, err)
	}
	for _, a := range addrs {
		var ip net.IP
		switch v := a.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip == nil || ip.IsLoopback() || ip.To4() == nil {
			continue
		}
		return ip.String(), nil
	}
	return "", fmt.Errorf("no suitable IPv4 on interface %q", name)
}
