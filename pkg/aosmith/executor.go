package aosmith

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aosmith-community/aosmith-go/pkg/utils"
)

const graphqlPath = "/graphql"

const (
	invalidCredentialsCode    = "INVALID_CREDENTIALS"
	noEnergyUsageDataSentinel = "No data to display at this time."
)

// executeQuery is the single entry point for every call to the vendor
// backend. It wraps one logical call in the bounded retry policy: only
// Unknown-class failures (transport faults, timeouts, server errors) are
// retried; credential and parameter errors propagate on first occurrence.
func (c *client) executeQuery(ctx context.Context, query string, variables map[string]interface{}, loginRequired bool) (map[string]interface{}, error) {
	var lastErr error
	for attempt := 1; attempt <= c.options.MaxAttempts; attempt++ {
		response, err := c.sendQuery(ctx, query, variables, loginRequired)
		if err == nil {
			return response, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
		if attempt == c.options.MaxAttempts {
			break
		}
		log.Debug().
			Err(err).
			Int("attempt", attempt).
			Dur("delay", c.options.RetryDelay).
			Msg("Query failed, waiting before retrying")
		select {
		case <-ctx.Done():
			return nil, newUnknownError("request cancelled", ctx.Err())
		case <-time.After(c.options.RetryDelay):
		}
	}
	return nil, lastErr
}

// sendQuery performs a single logical call: it makes sure a token is held
// when the call needs one, posts the document, and classifies the response.
// A 401 clears the token, logs in again and resends the same call exactly
// once; the loop is explicitly bounded by the retryingAfterLogin flag so a
// server that keeps answering 401 cannot cause unbounded recursion.
func (c *client) sendQuery(ctx context.Context, query string, variables map[string]interface{}, loginRequired bool) (map[string]interface{}, error) {
	requestID := uuid.New().String()
	log.Debug().
		Str("requestId", requestID).
		Bool("loginRequired", loginRequired).
		Str("query", strings.ReplaceAll(query, "\n", " ")).
		Msg("Sending query")
	log.Trace().
		Str("requestId", requestID).
		Str("variables", utils.PrettyPrint(variables)).
		Msg("Query variables")

	retryingAfterLogin := false
	for {
		token := ""
		if loginRequired {
			if c.currentToken() == "" {
				if err := c.login(ctx); err != nil {
					return nil, err
				}
			}
			token = c.currentToken()
			if token == "" {
				return nil, newUnknownError("login failed", nil)
			}
		}

		statusCode, body, err := c.doRequest(ctx, requestID, query, variables, token)
		if err != nil {
			return nil, err
		}

		if statusCode == http.StatusUnauthorized {
			// A 401 on the login document itself cannot be repaired by
			// another login; re-entering login here would self-deadlock on
			// loginMutex, which is held for the whole login round-trip.
			if query == loginQuery {
				return nil, newUnknownError("received status code 401", nil)
			}
			if retryingAfterLogin {
				return nil, newUnknownError("received status code 401 after logging in", nil)
			}
			log.Debug().Str("requestId", requestID).Msg("Access token may be expired, logging in again")
			c.invalidateToken()
			if err := c.login(ctx); err != nil {
				return nil, err
			}
			retryingAfterLogin = true
			continue
		}
		if statusCode != http.StatusOK {
			return nil, newUnknownError(fmt.Sprintf("received status code %d", statusCode), nil)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, newUnknownError("error parsing response", err)
		}

		if err := c.classifyServerErrors(query, response); err != nil {
			return nil, err
		}
		return response, nil
	}
}

// doRequest posts the document through the injected transport within the
// fixed per-attempt budget. Every failure at this level is transient by
// classification and therefore eligible for retry.
func (c *client) doRequest(ctx context.Context, requestID string, query string, variables map[string]interface{}, token string) (int, []byte, error) {
	jsonBody, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return 0, nil, newUnknownError("error building the request", err)
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.options.RequestTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(requestCtx, http.MethodPost, c.options.BaseURL+graphqlPath, bytes.NewReader(jsonBody))
	if err != nil {
		return 0, nil, newUnknownError("error building the request", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("brand", "aosmith")
	request.Header.Set("version", appVersion)
	request.Header.Set("User-Agent", userAgent)
	if token != "" {
		request.Header.Set("authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, nil, newUnknownError("request timed out", err)
		}
		return 0, nil, newUnknownError("request failed", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, nil, newUnknownError("error reading the response", err)
	}

	log.Debug().
		Str("requestId", requestID).
		Str("status", response.Status).
		Msg("Response received")
	log.Trace().
		Str("requestId", requestID).
		Str("body", string(body)).
		Msg("Response body")

	return response.StatusCode, body, nil
}

// classifyServerErrors turns the server-side error list of a 200 response
// into the error taxonomy, and rejects device listings whose liveness
// indicator is missing: downstream status logic cannot tolerate a device
// without an online/offline reading.
func (c *client) classifyServerErrors(query string, response map[string]interface{}) error {
	if rawErrors, ok := response["errors"].([]interface{}); ok {
		// A credentials rejection anywhere in the list takes precedence
		// over every other classification.
		for _, rawError := range rawErrors {
			errorMap, _ := rawError.(map[string]interface{})
			if code, _ := childMap(errorMap, "extensions")["code"].(string); code == invalidCredentialsCode {
				return newInvalidCredentialsError("invalid email address or password")
			}
		}
		messages := make([]string, 0, len(rawErrors))
		for _, rawError := range rawErrors {
			errorMap, _ := rawError.(map[string]interface{})
			message, _ := errorMap["message"].(string)
			if query == energyUseDataQuery && message == noEnergyUsageDataSentinel {
				return newEnergyUsageUnavailableError("energy usage data is unavailable")
			}
			messages = append(messages, message)
		}
		return newUnknownError("error: "+strings.Join(messages, ", "), nil)
	}

	if query == devicesQuery {
		if rawDevices, ok := childMap(response, "data")["devices"].([]interface{}); ok {
			for _, rawDevice := range rawDevices {
				deviceMap, _ := rawDevice.(map[string]interface{})
				if childMap(deviceMap, "data")["isOnline"] == nil {
					return newUnknownError("device data is incomplete", nil)
				}
			}
		}
	}
	return nil
}

// login acquires a fresh session token. The mutex makes the login
// single-flight: a caller that blocked on the mutex while another login was
// in flight finds the fresh token on entry and returns without a second
// round-trip.
func (c *client) login(ctx context.Context) error {
	c.loginMutex.Lock()
	defer c.loginMutex.Unlock()

	if c.token != "" {
		return nil
	}

	passcode := buildPasscode(c.options.Email, c.options.Password)
	response, err := c.executeQuery(ctx, loginQuery, map[string]interface{}{"passcode": passcode}, false)
	if err != nil {
		return err
	}

	tokens := childMap(childMap(childMap(childMap(response, "data"), "login"), "user"), "tokens")
	token, _ := tokens["accessToken"].(string)
	c.token = token
	if token != "" {
		log.Debug().Msg("Successfully logged in")
	}
	return nil
}

func (c *client) currentToken() string {
	c.loginMutex.Lock()
	defer c.loginMutex.Unlock()
	return c.token
}

func (c *client) invalidateToken() {
	c.loginMutex.Lock()
	defer c.loginMutex.Unlock()
	c.token = ""
}
