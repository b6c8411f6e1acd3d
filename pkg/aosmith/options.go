package aosmith

import (
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://r2.wh8.co"

	appVersion = "13.0.2"
	userAgent  = "okhttp/4.9.2"
)

// ClientOptions contains the configurable options for an A. O. Smith Client.
type ClientOptions struct {
	// BaseURL of the vendor backend; the GraphQL endpoint lives at
	// BaseURL + "/graphql".
	BaseURL  string
	Email    string
	Password string
	// HTTPClient is the transport used for every call. When nil the client
	// creates its own; supplying one lets the caller own connection pooling
	// and TLS policy.
	HTTPClient *http.Client
	// RequestTimeout is the per-attempt budget for a single HTTP call.
	RequestTimeout time.Duration
	// MaxAttempts bounds the retry loop around each logical call. Only
	// Unknown-class failures are retried.
	MaxAttempts int
	// RetryDelay is the fixed wait between attempts.
	RetryDelay time.Duration
}

// NewClientOptions will create a new ClientOptions type with the default
// values.
//
//	BaseURL: https://r2.wh8.co
//	RequestTimeout: 20s
//	MaxAttempts: 6
//	RetryDelay: 10s
func NewClientOptions() *ClientOptions {
	return &ClientOptions{
		BaseURL:        defaultBaseURL,
		RequestTimeout: 20 * time.Second,
		MaxAttempts:    6,
		RetryDelay:     10 * time.Second,
	}
}

// SetBaseURL overrides the vendor backend URL.
func (o *ClientOptions) SetBaseURL(baseURL string) *ClientOptions {
	o.BaseURL = baseURL
	return o
}

// SetCredentials sets the account email and password used for login.
func (o *ClientOptions) SetCredentials(email string, password string) *ClientOptions {
	o.Email = email
	o.Password = password
	return o
}

// SetHTTPClient injects the transport to use for all calls.
func (o *ClientOptions) SetHTTPClient(httpClient *http.Client) *ClientOptions {
	o.HTTPClient = httpClient
	return o
}

// SetRequestTimeout sets the per-attempt HTTP budget.
func (o *ClientOptions) SetRequestTimeout(timeout time.Duration) *ClientOptions {
	o.RequestTimeout = timeout
	return o
}

// SetMaxAttempts sets the bound of the retry loop.
func (o *ClientOptions) SetMaxAttempts(attempts int) *ClientOptions {
	o.MaxAttempts = attempts
	return o
}

// SetRetryDelay sets the fixed wait between attempts.
func (o *ClientOptions) SetRetryDelay(delay time.Duration) *ClientOptions {
	o.RetryDelay = delay
	return o
}
