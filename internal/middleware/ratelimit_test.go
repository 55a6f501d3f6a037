package middleware_test

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"sonority/internal/logger"
	"sonority/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis speaks enough RESP2 for INCR and EXPIRE against a manual clock.
type fakeRedis struct {
	ln net.Listener

	mu       sync.Mutex
	now      time.Time
	counters map[string]int64
	expiry   map[string]time.Time
	expires  int
}

func newFakeRedis(t *testing.T) *fakeRedis {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	f := &fakeRedis{
		ln:       ln,
		now:      time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
		counters: map[string]int64{},
		expiry:   map[string]time.Time{},
	}
	go f.serve()
	t.Cleanup(func() { _ = ln.Close() })
	return f
}

func (f *fakeRedis) addr() string { return f.ln.Addr().String() }

func (f *fakeRedis) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fakeRedis) expireCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expires
}

func (f *fakeRedis) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeRedis) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		if _, err := io.WriteString(conn, f.exec(args)); err != nil {
			return
		}
	}
}

func (f *fakeRedis) exec(args []string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch strings.ToUpper(args[0]) {
	case "INCR":
		key := args[1]
		if at, ok := f.expiry[key]; ok && !f.now.Before(at) {
			delete(f.counters, key)
			delete(f.expiry, key)
		}
		f.counters[key]++
		return fmt.Sprintf(":%d\r\n", f.counters[key])
	case "EXPIRE", "PEXPIRE":
		key := args[1]
		n, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return "-ERR value is not an integer\r\n"
		}
		if _, ok := f.counters[key]; !ok {
			return ":0\r\n"
		}
		unit := time.Second
		if strings.ToUpper(args[0]) == "PEXPIRE" {
			unit = time.Millisecond
		}
		f.expiry[key] = f.now.Add(time.Duration(n) * unit)
		f.expires++
		return ":1\r\n"
	default:
		return fmt.Sprintf("-ERR unknown command '%s'\r\n", args[0])
	}
}

func readCommand(r *bufio.Reader) ([]string, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, "*") {
		return nil, fmt.Errorf("unexpected line %q", line)
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, n)
	for i := 0; i < n; i++ {
		header, err := readLine(r)
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimPrefix(header, "$"))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:size]))
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return args, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func TestRateLimit_FixedWindow(t *testing.T) {
	srv := newFakeRedis(t)
	client := redis.NewClient(&redis.Options{
		Addr:            srv.addr(),
		Protocol:        2,
		DisableIdentity: true,
	})
	t.Cleanup(func() { _ = client.Close() })

	app := fiber.New()
	app.Get("/", middleware.RateLimit(client, "login", 2, time.Minute, logger.NewNop()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	do := func() (int, string) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode, resp.Header.Get(fiber.HeaderRetryAfter)
	}

	status, _ := do()
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = do()
	assert.Equal(t, fiber.StatusOK, status)

	status, retryAfter := do()
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "60", retryAfter)

	// Rejected requests inside the window do not push it forward.
	srv.advance(40 * time.Second)
	status, _ = do()
	assert.Equal(t, fiber.StatusTooManyRequests, status)

	srv.advance(30 * time.Second)
	status, _ = do()
	assert.Equal(t, fiber.StatusOK, status)

	// One EXPIRE per window opened.
	assert.Equal(t, 2, srv.expireCalls())
}
