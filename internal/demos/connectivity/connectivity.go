package connectivity

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultDialTimeout = 2 * time.Second
	DefaultCacheTTL    = 10 * time.Second
)

// Checker reports whether the catalog can be reached right now.
type Checker interface {
	Online(ctx context.Context) bool
}

// Static always reports the same state.
type Static bool

func (s Static) Online(_ context.Context) bool {
	return bool(s)
}

type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Probe dials the catalog host and remembers the answer for a while, so a
// burst of resolutions costs one dial.
type Probe struct {
	address     string
	dialTimeout time.Duration
	cacheTTL    time.Duration
	dial        dialFunc

	// one dial at a time, the memo lock is never held while dialing
	dials     singleflight.Group
	mutex     sync.Mutex
	online    bool
	checkedAt time.Time
}

// NewProbe builds a probe for the host of targetURL (port 443 for https,
// 80 for http when the url has none).
func NewProbe(targetURL string, dialTimeout, cacheTTL time.Duration) (*Probe, error) {
	address, err := hostPort(targetURL)
	if err != nil {
		return nil, err
	}

	if dialTimeout <= 0 {
		dialTimeout = DefaultDialTimeout
	}
	if cacheTTL < 0 {
		cacheTTL = 0
	}

	dialer := &net.Dialer{}
	return &Probe{
		address:     address,
		dialTimeout: dialTimeout,
		cacheTTL:    cacheTTL,
		dial:        dialer.DialContext,
	}, nil
}

func (p *Probe) Online(ctx context.Context) bool {
	p.mutex.Lock()
	if !p.checkedAt.IsZero() && time.Since(p.checkedAt) < p.cacheTTL {
		online := p.online
		p.mutex.Unlock()
		return online
	}
	p.mutex.Unlock()

	// a dial shared by several callers must not die with the first one
	dialCtx := context.WithoutCancel(ctx)
	v, _, _ := p.dials.Do(p.address, func() (any, error) {
		return p.check(dialCtx), nil
	})
	return v.(bool)
}

func (p *Probe) check(ctx context.Context) bool {
	dialCtx, cancel := context.WithTimeout(ctx, p.dialTimeout)
	defer cancel()

	conn, err := p.dial(dialCtx, "tcp", p.address)
	online := err == nil
	if online {
		_ = conn.Close()
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if online != p.online || p.checkedAt.IsZero() {
		if online {
			log.Infof("connectivity: [%s] reachable", p.address)
		} else {
			log.Warnf("connectivity: [%s] unreachable: %s", p.address, err)
		}
	}

	p.online = online
	p.checkedAt = time.Now()

	return online
}

func hostPort(targetURL string) (string, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return "", fmt.Errorf("parse probe url: %w", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("probe url [%s] has no host", targetURL)
	}

	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "http":
			port = "80"
		default:
			port = "443"
		}
	}

	return net.JoinHostPort(u.Hostname(), port), nil
}
