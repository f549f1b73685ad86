package integration

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/timekeeper/internal/config"
	"github.com/oshokin/timekeeper/internal/service/tracker"
	"github.com/oshokin/timekeeper/internal/timezone"
)

// reservePort returns a free local address for the metrics server.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

// fetch returns the body of a GET request, or an empty string on failure.
func fetch(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ""
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return ""
	}

	return string(body)
}

// TestTracker_ServesMetrics runs the real tracker with the system clock and
// scrapes its metrics endpoint until it stops on cancellation.
func TestTracker_ServesMetrics(t *testing.T) {
	t.Parallel()

	addr := reservePort(t)
	cfgPath := filepath.Join(t.TempDir(), "timekeeper.yaml")

	// Two hours ahead keeps the alarm pending for the whole test.
	pendingAt := time.Now().UTC().Add(2 * time.Hour).Format("15:04")

	require.NoError(t, config.Save(cfgPath, &config.Config{
		TickInterval:   10 * time.Millisecond,
		MetricsAddress: addr,
		Zones:          timezone.Catalog{{Label: "UTC", Zone: "UTC"}},
		Alarms: []config.AlarmSpec{
			{Label: "Later", Time: pendingAt, Zone: "UTC"},
		},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer

	done := make(chan error, 1)

	go func() {
		done <- tracker.Run(ctx, &tracker.Options{
			ConfigPath:     cfgPath,
			ConfigExplicit: true,
			Output:         &out,
		})
	}()

	require.Eventually(t, func() bool {
		return fetch(ctx, "http://"+addr+tracker.HealthPath) == "ok"
	}, 5*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		body := fetch(ctx, "http://"+addr+tracker.MetricsPath)

		return strings.Contains(body, `timekeeper_alarms{state="pending"} 1`) &&
			strings.Contains(body, "timekeeper_ticks_total")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("tracker did not stop after cancellation")
	}

	require.Empty(t, out.String())
}
