package upstash

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/whalecast/internal/infrastructure/kv"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
	"github.com/riskibarqy/whalecast/internal/platform/resilience"
)

const (
	scanCount       = 500
	maxErrorBodyLen = 4096
)

var errUpstashTransient = crerr.New("upstash transient failure")

type Config struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Store is a kv.Store speaking the Upstash Redis REST protocol.
type Store struct {
	client  *http.Client
	baseURL string
	token   string
	logger  *logging.Logger
	// breaker is nil when the circuit breaker is disabled.
	breaker *resilience.CircuitBreaker
}

type restResponse struct {
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

func NewStore(cfg Config, logger *logging.Logger) (*Store, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid UPSTASH_REDIS_REST_URL")
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, crerr.New("upstash token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	s := &Store{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		token:   strings.TrimSpace(cfg.Token),
		logger:  logger.Named("upstash"),
		breaker: cfg.CircuitBreaker.Build(),
	}
	s.breaker.OnStateChange(func(from, to resilience.CircuitState) {
		s.logger.Warn("upstash circuit breaker state changed", "from", from, "to", to)
	})
	return s, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	result, err := s.do(ctx, "GET", key)
	if err != nil {
		return nil, false, err
	}
	switch v := result.(type) {
	case nil:
		return nil, false, nil
	case string:
		return []byte(v), true, nil
	default:
		return nil, false, protocolErr(crerr.Newf("upstash GET: unexpected result type %T", result))
	}
}

func (s *Store) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return [][]byte{}, nil
	}

	result, err := s.do(ctx, append([]string{"MGET"}, keys...)...)
	if err != nil {
		return nil, err
	}
	items, ok := result.([]any)
	if !ok || len(items) != len(keys) {
		return nil, protocolErr(crerr.Newf("upstash MGET: unexpected result %T with %d keys", result, len(keys)))
	}

	out := make([][]byte, len(keys))
	for i, item := range items {
		switch v := item.(type) {
		case nil:
		case string:
			out[i] = []byte(v)
		default:
			return nil, protocolErr(crerr.Newf("upstash MGET: unexpected value type %T for key %s", item, keys[i]))
		}
	}
	return out, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.do(ctx, "SET", key, string(value))
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.do(ctx, "DEL", key)
	return err
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeGlob(prefix) + "*"
	out := make([]string, 0)
	seen := make(map[string]struct{})

	cursor := "0"
	for {
		result, err := s.do(ctx, "SCAN", cursor, "MATCH", pattern, "COUNT", strconv.Itoa(scanCount))
		if err != nil {
			return nil, err
		}
		next, keys, err := parseScanResult(result)
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
		if next == "0" {
			return out, nil
		}
		cursor = next
	}
}

func (s *Store) Ping(ctx context.Context) error {
	_, err := s.do(ctx, "PING")
	return err
}

func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

func (s *Store) do(ctx context.Context, command ...string) (any, error) {
	var result any
	err := s.breaker.Execute(func() error {
		var callErr error
		result, callErr = s.call(ctx, command)
		return callErr
	}, isTransient)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		s.logger.WarnContext(ctx, "upstash circuit breaker rejected request", "command", command[0], "state", s.breaker.State())
		return nil, fmt.Errorf("upstash %s: %w: %w", command[0], kv.ErrUnavailable, err)
	}
	return result, err
}

// call performs one REST round trip. Failures the breaker should count are
// marked with errUpstashTransient.
func (s *Store) call(ctx context.Context, command []string) (any, error) {
	name := command[0]
	body, err := sonic.Marshal(command)
	if err != nil {
		return nil, crerr.Wrap(err, "marshal upstash command")
	}
	preview := buildCommandPreview(command)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", name),
			attribute.String("upstash.command_preview", preview),
		)
	}
	s.logger.DebugContext(ctx, "upstash request", "command", preview)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, crerr.Wrap(err, "create upstash request")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		callErr := fmt.Errorf("upstash %s: %w: %w", name, kv.ErrUnavailable, err)
		if ctx.Err() == nil {
			callErr = fmt.Errorf("%w: %w", errUpstashTransient, callErr)
		}
		return nil, callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: upstash %s: read body: %w: %w", errUpstashTransient, name, kv.ErrUnavailable, err)
	}

	var decoded restResponse
	decodeErr := sonic.Unmarshal(raw, &decoded)

	if resp.StatusCode/100 != 2 {
		message := strings.TrimSpace(truncateForLog(string(raw), maxErrorBodyLen))
		if decodeErr == nil && decoded.Error != "" {
			message = decoded.Error
		}
		callErr := fmt.Errorf("%w: %w", kv.ErrUnavailable, crerr.Newf("upstash %s status=%d error=%s", name, resp.StatusCode, message))
		if isRetryableStatus(resp.StatusCode) {
			callErr = fmt.Errorf("%w: %w", errUpstashTransient, callErr)
		}
		return nil, callErr
	}

	if decodeErr != nil {
		return nil, protocolErr(crerr.Wrapf(decodeErr, "decode upstash %s response", name))
	}
	if decoded.Error != "" {
		return nil, protocolErr(crerr.Newf("upstash %s: %s", name, decoded.Error))
	}
	return decoded.Result, nil
}

// protocolErr marks a reply the client cannot use. The backend answered, so
// the breaker does not count it, but callers still see the store as unavailable.
func protocolErr(err error) error {
	return fmt.Errorf("%w: %w", kv.ErrUnavailable, err)
}

func isTransient(err error) bool {
	return stderrors.Is(err, errUpstashTransient)
}

func parseScanResult(result any) (string, []string, error) {
	parts, ok := result.([]any)
	if !ok || len(parts) != 2 {
		return "", nil, protocolErr(crerr.Newf("upstash SCAN: unexpected result %T", result))
	}

	var cursor string
	switch v := parts[0].(type) {
	case string:
		cursor = v
	case float64:
		cursor = strconv.FormatInt(int64(v), 10)
	default:
		return "", nil, protocolErr(crerr.Newf("upstash SCAN: unexpected cursor type %T", parts[0]))
	}

	items, ok := parts[1].([]any)
	if !ok {
		return "", nil, protocolErr(crerr.Newf("upstash SCAN: unexpected keys type %T", parts[1]))
	}
	keys := make([]string, 0, len(items))
	for _, item := range items {
		key, ok := item.(string)
		if !ok {
			return "", nil, protocolErr(crerr.Newf("upstash SCAN: unexpected key type %T", item))
		}
		keys = append(keys, key)
	}
	return cursor, keys, nil
}

// buildCommandPreview renders a command for logs with stored values replaced by their size.
func buildCommandPreview(command []string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, part := range command {
		if i > 0 {
			_ = buf.WriteByte(' ')
		}
		if strings.EqualFold(command[0], "SET") && i == 2 {
			_, _ = buf.WriteString("<redacted " + strconv.Itoa(len(part)) + " bytes>")
			continue
		}
		_, _ = buf.WriteString(part)
	}
	return buf.String()
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func escapeGlob(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for _, r := range v {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
