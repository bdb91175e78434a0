package translate

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// MaxContentLength is the largest response body the service accepts.
	// Only the first line of the body is ever read.
	MaxContentLength = 2048
)

// HTTPService issues single GET requests against one configured endpoint
// and returns the first line of a validated response body.
type HTTPService struct {
	protocol   string
	host       string
	port       int
	path       string
	httpClient *http.Client
	logger     *logrus.Logger
	metrics    *MetricsCollector
}

// NewHTTPService creates a service for protocol://host:port/path.
// A port <= 0 selects the protocol's default port. A nil client falls back
// to a new http.Client, a nil logger to logrus.New().
func NewHTTPService(protocol, host string, port int, path string, httpClient *http.Client, logger *logrus.Logger) *HTTPService {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &HTTPService{
		protocol:   protocol,
		host:       host,
		port:       port,
		path:       path,
		httpClient: httpClient,
		logger:     logger,
		metrics:    NewMetricsCollector(host),
	}
}

// Query performs a GET with the already encoded query string and returns
// the first line of the body.
//
// The response must carry a body of 1 to MaxContentLength bytes whose first
// line is not empty, and status 200. Failures are reported as
// *RequestError, *ConnectionError or *ResponseError. On any failure the
// in-flight request is aborted before returning.
func (s *HTTPService) Query(ctx context.Context, query string) (string, error) {
	ctx, abort := context.WithCancel(ctx)
	defer abort()

	req, err := s.buildRequest(ctx, query)
	if err != nil {
		return "", err
	}

	body, err := s.execute(req)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"uri": redactKey(req.URL),
		}).Debug("Aborting request")
		abort()
		return "", err
	}

	return body, nil
}

// Dispose releases pooled connections held by the underlying client.
func (s *HTTPService) Dispose() {
	s.logger.WithFields(logrus.Fields{
		"host": s.host,
	}).Debug("Closing idle connections")
	s.httpClient.CloseIdleConnections()
}

func (s *HTTPService) buildRequest(ctx context.Context, query string) (*http.Request, error) {
	s.logger.WithFields(logrus.Fields{
		"protocol": s.protocol,
		"host":     s.host,
		"port":     s.port,
		"path":     s.path,
	}).Debug("Creating request")

	if s.protocol == "" || s.host == "" {
		return nil, &RequestError{
			Message: "Error whilst building URI [" + s.protocol + "]:[" + s.host + "]:[" + s.path + "]. Report as bug",
		}
	}

	host := s.host
	if s.port > 0 {
		host = net.JoinHostPort(s.host, strconv.Itoa(s.port))
	}
	uri := (&url.URL{
		Scheme:   s.protocol,
		Host:     host,
		Path:     s.path,
		RawQuery: query,
	}).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, &RequestError{
			Message: "Error whilst building URI [" + s.protocol + "]:[" + s.host + "]:[" + s.path + "]. Report as bug",
			Err:     err,
		}
	}

	return req, nil
}

func (s *HTTPService) execute(req *http.Request) (string, error) {
	uri := redactKey(req.URL)
	s.logger.WithFields(logrus.Fields{
		"uri": uri,
	}).Debug("Executing request")

	startTime := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(uri, err)
	}
	defer resp.Body.Close()

	s.logger.WithFields(logrus.Fields{
		"status_code":    resp.StatusCode,
		"content_length": resp.ContentLength,
		"duration_ms":    time.Since(startTime).Milliseconds(),
	}).Debug("Response received")

	reason := reasonPhrase(resp)

	// A negative length means unknown (chunked); reading is bounded below.
	if resp.ContentLength == 0 || resp.ContentLength > MaxContentLength {
		return "", newResponseError(resp.StatusCode, reason, nil,
			"Response content has unexpected length [%d]", resp.ContentLength)
	}

	line, err := readFirstLine(resp.Body)
	if errors.Is(err, errLineTooLong) {
		return "", newResponseError(resp.StatusCode, reason, err,
			"Response content has unexpected length [> %d]", MaxContentLength)
	}
	if err != nil {
		return "", newResponseError(resp.StatusCode, reason, err, "Error while reading response stream")
	}
	if line == "" {
		return "", newResponseError(resp.StatusCode, reason, nil,
			"Response content was invalid, got this [%s]", line)
	}
	s.metrics.RecordResponse(len(line))

	if resp.StatusCode != http.StatusOK {
		return "", newResponseError(resp.StatusCode, reason, nil,
			"Server responded with %s to request %s", line, uri)
	}

	return line, nil
}

var errLineTooLong = errors.New("first line exceeds maximum content length")

// readFirstLine returns the first line of body without its terminator.
// A line longer than MaxContentLength fails with errLineTooLong; this bounds
// bodies whose length was not announced.
func readFirstLine(body io.Reader) (string, error) {
	reader := bufio.NewReaderSize(io.LimitReader(body, MaxContentLength+1), MaxContentLength)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	if len(line) > MaxContentLength {
		return "", errLineTooLong
	}
	return strings.TrimSuffix(line, "\r"), nil
}

// classifyTransportError separates network failures from protocol misuse.
func classifyTransportError(uri string, err error) error {
	cause := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		cause = urlErr.Err
	}

	var netErr net.Error
	if errors.As(cause, &netErr) ||
		errors.Is(cause, io.EOF) ||
		errors.Is(cause, io.ErrUnexpectedEOF) ||
		errors.Is(cause, context.Canceled) ||
		errors.Is(cause, context.DeadlineExceeded) {
		return &ConnectionError{
			Message: "Error connecting to service while requesting " + uri,
			Err:     err,
		}
	}

	return &RequestError{
		Message: "Error using protocol while requesting " + uri + ". Report as bug",
		Err:     err,
	}
}

func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

// redactKey renders u with the API key masked, for logs and error messages.
func redactKey(u *url.URL) string {
	if u == nil {
		return ""
	}
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil || values.Get("key") == "" {
		return u.String()
	}
	redacted := *u
	redacted.RawQuery = strings.Replace(u.RawQuery, "key="+url.QueryEscape(values.Get("key")), "key=REDACTED", 1)
	return redacted.String()
}
